// Package cli provides the interactive posadmin back-office client.
//
// It drives a SessionManager and the entity repositories from a simple
// read-eval-print loop. Typical flow: restore the saved session, log in if
// needed, then list and edit records of any resource or print a bill for a
// sale.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - List, create, update and delete records of every resource
//   - Print a bill as text or save it as PDF
//
// Every mutation is followed by a fresh listing of the resource. An
// Unauthorized answer from the API ends the session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
