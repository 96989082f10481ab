// Package core contains the pure business rules of the library circulation:
// input validation, the late fee tariff and the outcome model every command handler reports.
//
// Nothing in this package performs I/O or reads the clock. Instants are always passed in,
// so that the same inputs produce the same fee, the same decision and the same message.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
