/*
Package runtime hosts contract instances and executes messages sent to them.

Contract code is registered under a numeric code id. Instantiating a code
creates an instance with its own address and an isolated store. Every
message is processed in a single cache wrap of the deliver store: the
contract handler runs first, then the effects it returned are executed
depth first, in order, with the emitting instance as the sender. A reply is
delivered to the emitter right after the effect that requested it. Any
error discards the whole cache, so a message is either fully applied or not
at all.
*/
package runtime
