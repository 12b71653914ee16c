package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/proto2ts/internal/diagnostic"
	"github.com/origadmin/proto2ts/internal/model"
)

var _ model.Resolver = (*NameResolver)(nil)

func mustParse(t *testing.T, src string) *model.Document {
	t.Helper()
	doc, err := model.ParseDocument([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestResolver_SingleMessage(t *testing.T) {
	doc := mustParse(t, `{"package":"P","messages":[{"name":"M","fields":[{"name":"x","type":"int32","rule":"required"}]}]}`)

	out, err := NewResolver().Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, "P", out.Package)
	assert.Equal(t, "P", out.Root.FullyQualifiedName)
	require.Len(t, out.Root.Messages, 1)

	m := out.Root.Messages[0]
	assert.Equal(t, "M", m.Name)
	assert.Equal(t, "P", m.FullyQualifiedName)
	assert.NotNil(t, m.Definitions)
	assert.Empty(t, m.Definitions)

	require.Len(t, m.Fields, 1)
	x := m.Fields[0]
	assert.Equal(t, "number", x.Type)
	assert.Equal(t, "int32", x.DeclaredType)
	assert.Equal(t, model.RuleRequired, x.Rule)
	assert.False(t, x.Qualified)

	assert.Equal(t, []model.Definition{{Name: "M", Type: "MBuilder"}}, out.Root.Definitions)
}

func TestResolver_NestedMessageReference(t *testing.T) {
	doc := mustParse(t, `{
		"package": "P",
		"messages": [{
			"name": "Outer",
			"fields": [
				{"name": "inner", "type": "Inner", "rule": "optional"},
				{"name": "kind", "type": "Kind", "rule": "required"},
				{"name": "other", "type": "Other", "rule": "repeated"}
			],
			"messages": [{"name": "Inner", "fields": [{"name": "id", "type": "uint64", "rule": "required"}]}],
			"enums": [{"name": "Kind", "values": [{"name": "A", "id": 0}, {"name": "B", "id": 1}]}]
		}]
	}`)

	out, err := NewResolver().Resolve(doc)
	require.NoError(t, err)

	outer, ok := lookup(out.Root, "Outer")
	require.True(t, ok)
	assert.Equal(t, "P", outer.FullyQualifiedName)

	require.Len(t, outer.Fields, 3)
	assert.Equal(t, "Outer.Inner", outer.Fields[0].Type)
	assert.True(t, outer.Fields[0].Qualified)
	assert.Equal(t, "Outer.Kind", outer.Fields[1].Type)
	assert.Equal(t, "Other", outer.Fields[2].Type)
	assert.False(t, outer.Fields[2].Qualified)

	assert.Equal(t, []model.Definition{
		{Name: "Inner", Type: "Outer.InnerBuilder"},
		{Name: "Kind", Type: "Outer.Kind"},
	}, outer.Definitions)

	inner, ok := lookup(outer, "Inner")
	require.True(t, ok)
	assert.Equal(t, "P.Outer", inner.FullyQualifiedName)
	assert.Empty(t, inner.Definitions)

	require.Len(t, outer.Enums, 1)
	assert.Equal(t, "P.Outer", outer.Enums[0].FullyQualifiedName)
	assert.Len(t, outer.Enums[0].Values, 2)
}

func TestResolver_ReferenceMessagesAreDropped(t *testing.T) {
	doc := mustParse(t, `{
		"package": "P",
		"messages": [
			{"name": "Base", "fields": [{"name": "ext", "type": "Ext", "rule": "optional"}],
			 "messages": [{"name": "Ext", "ref": "google.protobuf.MessageOptions", "fields": []}]},
			{"name": "Flagged", "ref": true},
			{"name": "Plain", "ref": ""}
		]
	}`)

	out, err := NewResolver().Resolve(doc)
	require.NoError(t, err)

	require.Len(t, out.Root.Messages, 2)
	_, ok := lookup(out.Root, "Flagged")
	assert.False(t, ok)
	assert.Equal(t, []model.Definition{
		{Name: "Base", Type: "BaseBuilder"},
		{Name: "Plain", Type: "PlainBuilder"},
	}, out.Root.Definitions)

	base, ok := lookup(out.Root, "Base")
	require.True(t, ok)
	assert.Empty(t, base.Messages)
	assert.Empty(t, base.Definitions)
	require.Len(t, base.Fields, 1)
	assert.Equal(t, "Ext", base.Fields[0].Type)
	assert.False(t, base.Fields[0].Qualified)

	forEachMessage(out.Root, func(m *model.ResolvedMessage) {
		for _, d := range m.Definitions {
			assert.NotEqual(t, "Ext", d.Name)
			assert.NotEqual(t, "Flagged", d.Name)
		}
	})
}

func TestResolver_QualifiedNameInvariant(t *testing.T) {
	doc := mustParse(t, deepSchema)

	out, err := NewResolver().ResolveAs(doc, "com.example")
	require.NoError(t, err)
	assert.Equal(t, "com.example", out.Root.FullyQualifiedName)

	var check func(parent *model.ResolvedMessage)
	check = func(parent *model.ResolvedMessage) {
		want := parent.FullyQualifiedName
		if parent.Name != "" {
			want += "." + parent.Name
		}
		for _, child := range parent.Messages {
			assert.Equal(t, want, child.FullyQualifiedName, "message %s", child.Name)
			check(child)
		}
		for _, e := range parent.Enums {
			assert.Equal(t, want, e.FullyQualifiedName, "enum %s", e.Name)
		}
	}
	check(out.Root)

	a, _ := lookup(out.Root, "A")
	b, _ := lookup(a, "B")
	c, _ := lookup(b, "C")
	require.NotNil(t, c)
	assert.Equal(t, "com.example.A.B", c.FullyQualifiedName)
	assert.Equal(t, "com.example.A", b.FullyQualifiedName)
	assert.Equal(t, []model.Definition{{Name: "C", Type: "B.CBuilder"}, {Name: "E", Type: "B.E"}}, b.Definitions)
	assert.Equal(t, "B.C", b.Fields[0].Type)
}

func TestResolver_Deterministic(t *testing.T) {
	doc := mustParse(t, deepSchema)
	r := NewResolver()

	first, err := r.Resolve(doc)
	require.NoError(t, err)
	second, err := r.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_DoesNotModifyInput(t *testing.T) {
	doc := mustParse(t, deepSchema)
	pristine := mustParse(t, deepSchema)

	_, err := NewResolver().Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, pristine, doc)
}

func TestResolver_SettingsAreCopied(t *testing.T) {
	settings := model.Settings{CamelCaseGetSet: false, UnderscoreGetSet: true, Properties: false}
	out, err := NewResolver(WithSettings(settings)).Resolve(mustParse(t, deepSchema))
	require.NoError(t, err)

	forEachMessage(out.Root, func(m *model.ResolvedMessage) {
		assert.Equal(t, settings, m.Settings, "message %q", m.Name)
	})
}

func TestResolver_EmptyScopes(t *testing.T) {
	out, err := NewResolver().Resolve(mustParse(t, `{"package":"P"}`))
	require.NoError(t, err)

	assert.Empty(t, out.Root.Messages)
	assert.Empty(t, out.Root.Enums)
	assert.Empty(t, out.Root.Definitions)
	assert.False(t, out.Diagnostics.HasErrors())
}

func TestResolver_DuplicateNames(t *testing.T) {
	src := `{
		"package": "P",
		"messages": [{
			"name": "M",
			"fields": [{"name": "s", "type": "State", "rule": "optional"}],
			"messages": [{"name": "State"}],
			"enums": [{"name": "State", "values": []}]
		}]
	}`

	t.Run("last write wins", func(t *testing.T) {
		out, err := NewResolver().Resolve(mustParse(t, src))
		require.NoError(t, err)

		m, _ := lookup(out.Root, "M")
		require.NotNil(t, m)
		assert.Equal(t, []model.Definition{{Name: "State", Type: "M.State"}}, m.Definitions)
		assert.Len(t, m.Messages, 1)
		assert.Equal(t, "M.State", m.Fields[0].Type)

		require.Len(t, out.Diagnostics.Warnings, 1)
		assert.Equal(t, diagnostic.CodeDuplicateName, out.Diagnostics.Warnings[0].Code)
		assert.Equal(t, "State", out.Diagnostics.Warnings[0].Name)
	})

	t.Run("strict", func(t *testing.T) {
		_, err := NewResolver(WithStrict(true)).Resolve(mustParse(t, src))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Contains(t, err.Error(), "[P] State: [duplicate-name]")
	})

	t.Run("strict reports every duplicate", func(t *testing.T) {
		doc := mustParse(t, `{
			"package": "P",
			"messages": [{"name": "A"}, {"name": "A"}, {"name": "B", "enums": [{"name": "E"}, {"name": "E"}]}]
		}`)

		_, err := NewResolver(WithStrict(true)).Resolve(doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Contains(t, err.Error(), "[P] A: [duplicate-name]")
		assert.Contains(t, err.Error(), "[P] E: [duplicate-name]")
	})
}

type upperNormalizer struct{}

func (upperNormalizer) Normalize(s string) string { return "T_" + s }

func TestResolver_CustomNormalizer(t *testing.T) {
	doc := mustParse(t, `{"messages":[{"name":"M","fields":[{"name":"x","type":"int32","rule":"required"}]}]}`)

	out, err := NewResolver(WithNormalizer(upperNormalizer{})).ResolveAs(doc, "Proto2TypeScript")
	require.NoError(t, err)

	m, _ := lookup(out.Root, "M")
	require.NotNil(t, m)
	assert.Equal(t, "T_int32", m.Fields[0].Type)
	assert.Equal(t, "Proto2TypeScript", m.FullyQualifiedName)
}

func TestLocalSegment(t *testing.T) {
	assert.Equal(t, "", localSegment("."))
	assert.Equal(t, "", localSegment(""))
	assert.Equal(t, ".A", localSegment(".A"))
	assert.Equal(t, "..", localSegment(".."))
}

// lookup returns the direct child message with the given name.
func lookup(m *model.ResolvedMessage, name string) (*model.ResolvedMessage, bool) {
	for _, child := range m.Messages {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

func forEachMessage(m *model.ResolvedMessage, fn func(*model.ResolvedMessage)) {
	fn(m)
	for _, child := range m.Messages {
		forEachMessage(child, fn)
	}
}

const deepSchema = `{
	"package": "com.example",
	"messages": [{
		"name": "A",
		"fields": [{"name": "b", "type": "B", "rule": "repeated"}],
		"messages": [{
			"name": "B",
			"fields": [
				{"name": "c", "type": "C", "rule": "optional"},
				{"name": "e", "type": "E", "rule": "required"},
				{"name": "raw", "type": "bytes", "rule": "optional"}
			],
			"messages": [{"name": "C", "fields": [{"name": "flag", "type": "BOOL", "rule": "required"}]}],
			"enums": [{"name": "E", "values": [{"name": "ONE", "id": 1}]}]
		}],
		"enums": [{"name": "Top", "values": [{"name": "X", "id": 0}]}]
	}, {
		"name": "Sibling",
		"fields": [{"name": "a", "type": "A", "rule": "optional"}]
	}],
	"enums": [{"name": "Global", "values": [{"name": "G", "id": 7}]}]
}`
