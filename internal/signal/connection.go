package signal

// Connection owns one handler registration on a long-lived emitter. The
// zero value is inactive; Release may be called any number of times.
type Connection struct {
	id         HandlerID
	disconnect func(HandlerID) bool
}

// Bind wraps an id returned by a Connect call together with the function
// that undoes it.
func Bind(id HandlerID, disconnect func(HandlerID) bool) Connection {
	return Connection{id: id, disconnect: disconnect}
}

// Active reports whether the registration is still held.
func (c *Connection) Active() bool {
	return c.id != 0
}

// ID returns the held handler id, or zero.
func (c *Connection) ID() HandlerID {
	return c.id
}

// Release disconnects the handler if it is still held.
func (c *Connection) Release() {
	if c.id == 0 {
		return
	}
	id := c.id
	c.id = 0
	if c.disconnect != nil {
		c.disconnect(id)
	}
	c.disconnect = nil
}
