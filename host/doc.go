// Package host abstracts the surface the boot shim runs inside.
//
// An Environment stands in for whatever hosts the execution module: a
// terminal session, a desktop window, or a scripted harness. It offers
// three subscriptions: a one-shot ready signal, an ordered stream of
// visibility transitions, and context menu requests whose default
// action the subscribed handler can suppress. Concrete environments
// live in subpackages; the boot controller consumes this package only.
package host
