package eventlog

// Cursor traverses the log's records in either direction.
//
// A cursor works on a snapshot taken when it is created, so it is stable
// under concurrent appends; create a new cursor to see newer records.
// Stepping past either end fails with ErrCursorAtEnd without moving.
type Cursor struct {
	records []Record
	pos     int
}

// Cursor returns a new cursor positioned at the oldest record.
// Positioning fails with ErrLogEmpty only when stepping or reading.
func (l *Log) Cursor() *Cursor {
	return &Cursor{records: l.Records()}
}

// SeekOldest positions the cursor at the oldest record.
func (c *Cursor) SeekOldest() error {
	if len(c.records) == 0 {
		return ErrLogEmpty
	}
	c.pos = 0
	return nil
}

// SeekNewest positions the cursor at the newest record.
func (c *Cursor) SeekNewest() error {
	if len(c.records) == 0 {
		return ErrLogEmpty
	}
	c.pos = len(c.records) - 1
	return nil
}

// Current returns the record under the cursor.
func (c *Cursor) Current() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrLogEmpty
	}
	return c.records[c.pos], nil
}

// Next steps toward the newest record and returns the record stepped to.
// At the newest record it returns ErrCursorAtEnd and does not move.
func (c *Cursor) Next() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrLogEmpty
	}
	if c.pos >= len(c.records)-1 {
		return Record{}, ErrCursorAtEnd
	}
	c.pos++
	return c.records[c.pos], nil
}

// Prev steps toward the oldest record and returns the record stepped to.
// At the oldest record it returns ErrCursorAtEnd and does not move.
func (c *Cursor) Prev() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrLogEmpty
	}
	if c.pos <= 0 {
		return Record{}, ErrCursorAtEnd
	}
	c.pos--
	return c.records[c.pos], nil
}
