/*
Package gconf provides a toolset for managing singleton configuration
records.

Each package that needs a configuration keeps a single record under the
"_c:<package name>" key. A configuration is always validated before being
written. Contracts use Save and Load to keep their configuration within their
own store. InitConfig loads the configuration from the genesis options.
*/
package gconf
