/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "github.com/suparena/adminstore/update"

// Patch describes a partial update of one entity.
type Patch interface {
	ChangeSet() update.ChangeSet
}

// BotPatch updates selected fields of a Bot.
type BotPatch struct {
	Name        update.Opt[string]
	Description update.Opt[string]
	Endpoint    update.Opt[string]
	Status      update.Opt[string]
}

func (p BotPatch) ChangeSet() update.ChangeSet {
	cs := update.Changes()
	p.Name.Apply(cs, "name")
	p.Description.Apply(cs, "description")
	p.Endpoint.Apply(cs, "endpoint")
	p.Status.Apply(cs, "status")
	return cs
}

// TestSetPatch updates selected fields of a TestSet. Cases replaces the
// whole list.
type TestSetPatch struct {
	Name        update.Opt[string]
	Description update.Opt[string]
	Language    update.Opt[string]
	Cases       update.Opt[[]TestCase]
}

func (p TestSetPatch) ChangeSet() update.ChangeSet {
	cs := update.Changes()
	p.Name.Apply(cs, "name")
	p.Description.Apply(cs, "description")
	p.Language.Apply(cs, "language")
	p.Cases.Apply(cs, "cases")
	return cs
}

// TestExecutionPatch records progress of a run.
type TestExecutionPatch struct {
	Status     update.Opt[string]
	Passed     update.Opt[int]
	Failed     update.Opt[int]
	FinishedAt update.Opt[Timestamp]
}

func (p TestExecutionPatch) ChangeSet() update.ChangeSet {
	cs := update.Changes()
	p.Status.Apply(cs, "status")
	p.Passed.Apply(cs, "passed")
	p.Failed.Apply(cs, "failed")
	p.FinishedAt.Apply(cs, "finishedAt")
	return cs
}

// TaskPatch updates selected fields of a Task.
type TaskPatch struct {
	Title       update.Opt[string]
	Description update.Opt[string]
	Status      update.Opt[string]
	Assignee    update.Opt[string]
}

func (p TaskPatch) ChangeSet() update.ChangeSet {
	cs := update.Changes()
	p.Title.Apply(cs, "title")
	p.Description.Apply(cs, "description")
	p.Status.Apply(cs, "status")
	p.Assignee.Apply(cs, "assignee")
	return cs
}

// TaskItemPatch updates selected fields of a TaskItem.
type TaskItemPatch struct {
	Text     update.Opt[string]
	Done     update.Opt[bool]
	Position update.Opt[int]
}

func (p TaskItemPatch) ChangeSet() update.ChangeSet {
	cs := update.Changes()
	p.Text.Apply(cs, "text")
	p.Done.Apply(cs, "done")
	p.Position.Apply(cs, "position")
	return cs
}
