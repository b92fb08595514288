/*
Package update builds partial updates from sparse change-sets.

A change-set names only the attributes that should change. Each entry is
either Unchanged (leave the stored value alone) or Set(v) (write v, where a
nil v writes NULL). Build turns it into a "SET #attr_x = :val_x, ..."
expression with matching name and value placeholders:

	inst, err := update.Build([]string{"id"}, update.Changes().Set("name", "new"))
	// inst.Expression() == "SET #attr_name = :val_name"

Identifier fields select the row and are never assigned. A change-set with no
effective change fails with errors.ErrEmptyUpdate instead of issuing a no-op
write.
*/
package update
