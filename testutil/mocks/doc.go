// Package mocks provides testify mocks for collaborators outside the library catalog, like the payment gateway.
package mocks
