/*
Package queue defines tasks to be performed to grow a tree
as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface.
Tasks hold the point set of their node in memory, so queues are meant
to be shared by workers of the same process.
*/
package queue
