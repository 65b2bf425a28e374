/*
Package droptest provides helpers and mocks for testing contracts and the
runtime.
*/
package droptest
