package ports

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRegistry() *ItemClassRegistry {
	return NewItemClassRegistry(
		ItemClassSpec{ItemClass: "widget", RelationField: "widget_id", RequiredFields: []string{"color", "size"}},
		ItemClassSpec{ItemClass: "gadget", RelationField: "gadget_id"},
	)
}

func TestRegistry_Lookup(t *testing.T) {
	registry := testRegistry()

	spec, err := registry.Lookup("widget")
	require.NoError(t, err)
	require.Equal(t, "widget_id", spec.RelationField)

	_, err = registry.Lookup("unknown")
	require.ErrorIs(t, err, ErrUnknownItemClass)
}

func TestRegistry_AllowedAttributesDropsUndeclared(t *testing.T) {
	registry := testRegistry()

	attrs, err := registry.AllowedAttributes("widget", Filter{"color": "red", "note": "gift"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"color": "red"}, attrs)
}

func TestRegistry_AllowedAttributesNilWhenNothingApplies(t *testing.T) {
	registry := testRegistry()

	attrs, err := registry.AllowedAttributes("widget", Filter{"note": "gift"})
	require.NoError(t, err)
	require.Nil(t, attrs)

	attrs, err = registry.AllowedAttributes("gadget", Filter{"color": "red"})
	require.NoError(t, err)
	require.Nil(t, attrs)

	attrs, err = registry.AllowedAttributes("widget", nil)
	require.NoError(t, err)
	require.Nil(t, attrs)
}
