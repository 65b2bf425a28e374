/*
Package orm provides typed access to models persisted in a KVStore.

A ModelBucket groups models of a single type under a common key prefix. All
keys of a bucket are prefixed with the bucket name followed by a colon:

	<bucket name>:<key>

A Sequence is a monotonic counter stored next to the buckets, usually used to
allocate keys.
*/
package orm
