// Package pep440 implements PEP 440 -- Version Identification and Dependency Specification.
//
// https://www.python.org/dev/peps/pep-0440/
//
// Quoted passages in this package are from that PEP, which has been placed in to the public
// domain.
package pep440
