/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package update

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/keys"
)

// Instruction is a SET update touching only the attributes of a change-set.
// Names and Values are ready for UpdateItemInput.ExpressionAttributeNames
// and ExpressionAttributeValues.
type Instruction struct {
	Assignments []string
	Names       map[string]string
	Values      map[string]types.AttributeValue
}

// Expression renders the update expression, e.g. "SET #attr_name = :val_name".
func (i *Instruction) Expression() string {
	return "SET " + strings.Join(i.Assignments, ", ")
}

// Build turns changes into an Instruction. Identifier fields and the key
// attributes select the row and are never assigned. Fields are emitted in
// sorted order so the same change-set always yields the same expression.
func Build(identifierFields []string, changes ChangeSet) (*Instruction, error) {
	excluded := make(map[string]struct{}, len(identifierFields))
	for _, f := range identifierFields {
		excluded[f] = struct{}{}
	}

	inst := &Instruction{
		Names:  make(map[string]string),
		Values: make(map[string]types.AttributeValue),
	}
	used := make(map[string]struct{})

	for _, field := range changes.Fields() {
		if _, skip := excluded[field]; skip || keys.IsReservedAttribute(field) {
			continue
		}

		av, err := attributevalue.Marshal(changes[field].Value())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for %q: %w", field, err)
		}

		suffix := placeholder(field, used)
		nameKey := "#attr_" + suffix
		valueKey := ":val_" + suffix

		inst.Assignments = append(inst.Assignments, fmt.Sprintf("%s = %s", nameKey, valueKey))
		inst.Names[nameKey] = field
		inst.Values[valueKey] = av
	}

	if len(inst.Assignments) == 0 {
		return nil, errors.NewEmptyUpdateError("")
	}
	return inst, nil
}

// placeholder derives an expression-safe token from an attribute name,
// unique within used.
func placeholder(field string, used map[string]struct{}) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, field)

	candidate := base
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}
