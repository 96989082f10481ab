// Package shell contains the imperative shell shared by all features of the library circulation:
// the handler contracts, the observability vocabulary and the helpers that record
// metrics, spans and logs around a handler call.
//
// Sub-packages provide the configuration (config), the observable handler wrappers (observable)
// and a simulated payment gateway (paymentgateway).
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
