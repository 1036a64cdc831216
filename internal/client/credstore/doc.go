// Package credstore persists the signed-in user, bearer token included, under
// a single key so that a session survives a restart.
//
// The record lives in one key/value medium per process: a SQLite file
// (durable) or process memory (session). Sign out removes the record along
// with keys written by older clients.
package credstore
