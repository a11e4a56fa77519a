// Package measure records how long pipelines and their steps take.
package measure
