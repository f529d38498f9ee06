// Package syncmap offers a lightweight, generic, concurrency-safe map with
// basic Get/Set/Delete/List operations guarded by a sync.RWMutex.  Within
// thriftcall it backs the memoized type-descriptor cache so that a type
// string is parsed at most once per process.
package syncmap
