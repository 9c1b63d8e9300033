// Copyright (c) 2026 The Cmini Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
package il

import "cmini/ctype"

// Value is an ILValue: a typed temporary identified by id, optionally
// carrying a compile-time-known literal (numeric constant or null
// pointer constant). Identity is the id, not the pointer, but in
// practice every Value is allocated once by NewValue and referenced by
// pointer thereafter.
type Value struct {
	id           int
	CType        *ctype.CType
	Literal      *int64
	NullPtrConst bool
}

func (v *Value) ID() int { return v.id }

func (v *Value) IsLiteral() bool { return v.Literal != nil }

// valueCounter hands out monotonically increasing ids, one per
// Program, replacing any package-level counter the teacher might have
// used: each compilation owns its own Program and hence its own
// counter, matching the explicit-context design used throughout.
type valueCounter struct{ next int }

func (c *valueCounter) NewValue(t *ctype.CType) *Value {
	c.next++
	return &Value{id: c.next, CType: t}
}

func (c *valueCounter) NewLiteral(t *ctype.CType, v int64) *Value {
	val := c.NewValue(t)
	val.Literal = &v
	return val
}
