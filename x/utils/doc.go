/*
Package utils provides decorators that are shared by all contract routers:
panic recovery, logging, savepoints and action tagging.
*/
package utils
