// Package apitest runs an in-process fake of the back-office REST API for
// tests. It issues HS256 JWTs from login and registration, serves every
// resource collection from memory with its list envelope, checks bearer
// tokens on resource routes and records each request it receives.
package apitest
