// Package positioning turns the callbacks of a positioning subsystem into one
// broadcast stream of typed events.
//
// An Adapter registers itself as the only delegate of a Manager, translates
// every callback into an [events.Event], drops callbacks that did not come
// from its own Manager, and decides when the Manager is told to start
// producing locations. Consumers subscribe to [Adapter.Events] or to the
// derived [Adapter.Locations] and [Adapter.CurrentLocation] streams, as many
// times as they like, without touching the Manager.
//
// A hard subsystem failure terminates the stream with an *UnknownError. Denied
// authorization does not: it is an ordinary AuthorizationChanged event and a
// later grant still starts updates. Recovering from a terminated stream takes
// a new Adapter.
package positioning
