// Package models defines the client-side data models: the signed-in user and
// session, and the records of the eleven back-office resources together with
// the table that maps each resource to its REST path and list envelope.
package models
