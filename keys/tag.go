/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import "fmt"

// Tag names an entity type sharing the table. The set is closed: values can
// only be obtained from the variables below or from ParseTag.
type Tag struct {
	name  string
	shape Shape
}

var (
	Bot           = Tag{"Bot", Flat}
	TestSet       = Tag{"TestSet", Flat}
	TestExecution = Tag{"TestExecution", Nested}
	Task          = Tag{"Task", Flat}
	TaskItem      = Tag{"TaskItem", Nested}
)

var allTags = []Tag{Bot, TestSet, TestExecution, Task, TaskItem}

// Tags returns every known tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, len(allTags))
	copy(out, allTags)
	return out
}

// ParseTag resolves a tag name as it appears in an encoded key.
func ParseTag(name string) (Tag, error) {
	for _, t := range allTags {
		if t.name == name {
			return t, nil
		}
	}
	return Tag{}, fmt.Errorf("unknown entity tag %q", name)
}

func (t Tag) String() string {
	return t.name
}

// Shape returns the key shape rows of the tag are stored with. Test
// executions live under their bot and task items under their task.
func (t Tag) Shape() Shape {
	return t.shape
}

// IsZero reports whether t is the zero Tag, which names no entity type.
func (t Tag) IsZero() bool {
	return t.name == ""
}

// Shape is the number of identifier components that address one row of an
// entity type. All but the last component scope the partition to a parent.
type Shape int

const (
	// Singleton keys hold the tag alone. No entity type is stored this way.
	Singleton Shape = iota
	// Flat entities share the tag's partition.
	Flat
	// Nested entities are partitioned by their parent's identifier.
	Nested
)

// Parents returns how many leading identifier components form the partition key.
func (s Shape) Parents() int {
	if s <= Singleton {
		return 0
	}
	return int(s) - 1
}
