package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The revision version invariant relies on the database rejecting two rows
// with the same (content_id, version). The SQL migrations declare the
// constraint explicitly; this guards the AutoMigrate path, which builds the
// schema from these tags.
func TestRevisionVersionIndexIsUnique(t *testing.T) {
	assert := assert.New(t)

	typ := reflect.TypeOf(Revision{})
	for _, name := range []string{"ContentID", "Version"} {
		field, ok := typ.FieldByName(name)
		assert.True(ok, name)
		assert.True(
			strings.Contains(field.Tag.Get("gorm"), "uniqueIndex:idx_revisions_content_version"),
			"Revision.%s must be part of the unique (content_id, version) index", name,
		)
	}
}
