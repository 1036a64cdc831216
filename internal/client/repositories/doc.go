// Package repositories provides the data-access layer for the back-office
// resources.
//
// # Overview
//
// One generic Repository[T] is instantiated per resource. Each call goes
// through the authorized gateway: Create posts to the resource path, List
// unwraps the list envelope, Update puts to path/{id} and Delete deletes it.
//
// Repositories never cache, retry or sort. After a mutation the caller is
// expected to List again. Concurrent writes to the same id race and the last
// response wins.
//
// # Errors
//
// Every failure is a *RepositoryError carrying the server message verbatim
// (or a generic one). It unwraps to client.ErrRepository and to the gateway
// error, so errors.Is(err, client.ErrUnauthorized) still works.
//
// Key Types
//
//   - type Repository[T]  typed CRUD over one resource
//   - type Collection     the same operations over raw JSON, for the CLI
//   - type Set            all eleven repositories, addressable by name
package repositories
