// Package kinds names the AST node kinds and schema type kinds used across
// the parser, schema and introspection layers, so every layer tags a node
// the same way instead of each inventing its own strings.
package kinds

// AST node kinds, returned by Node.GetKind().
const (
	Document            = "Document"
	OperationDefinition  = "OperationDefinition"
	FragmentDefinition   = "FragmentDefinition"
	VariableDefinition   = "VariableDefinition"
	Variable             = "Variable"
	SelectionSet         = "SelectionSet"
	Field                = "Field"
	Argument             = "Argument"
	FragmentSpread       = "FragmentSpread"
	InlineFragment       = "InlineFragment"
	Name                 = "Name"
	NamedType            = "NamedType"
	ListType             = "ListType"
	NonNullType          = "NonNullType"
	Directive            = "Directive"
	IntValue             = "IntValue"
	FloatValue           = "FloatValue"
	StringValue          = "StringValue"
	BooleanValue         = "BooleanValue"
	NullValue            = "NullValue"
	EnumValue            = "EnumValue"
	ListValue            = "ListValue"
	ObjectValue          = "ObjectValue"
	ObjectField          = "ObjectField"

	SchemaDefinition        = "SchemaDefinition"
	ScalarTypeDefinition    = "ScalarTypeDefinition"
	ObjectTypeDefinition    = "ObjectTypeDefinition"
	InterfaceTypeDefinition = "InterfaceTypeDefinition"
	UnionTypeDefinition     = "UnionTypeDefinition"
	EnumTypeDefinition      = "EnumTypeDefinition"
	InputObjectTypeDefinition = "InputObjectTypeDefinition"
	DirectiveDefinition     = "DirectiveDefinition"
	FieldDefinition         = "FieldDefinition"
	InputValueDefinition    = "InputValueDefinition"
	EnumValueDefinition     = "EnumValueDefinition"
)

// Schema type kinds, surfaced through introspection's __TypeKind enum.
const (
	SCALAR       = "SCALAR"
	OBJECT       = "OBJECT"
	INTERFACE    = "INTERFACE"
	UNION        = "UNION"
	ENUM         = "ENUM"
	INPUT_OBJECT = "INPUT_OBJECT"
	LIST         = "LIST"
	NON_NULL     = "NON_NULL"
)

// Directive locations, validated against the location list carried on each
// directive's definition.
const (
	LocQuery              = "QUERY"
	LocMutation           = "MUTATION"
	LocSubscription       = "SUBSCRIPTION"
	LocField              = "FIELD"
	LocFragmentDefinition = "FRAGMENT_DEFINITION"
	LocFragmentSpread     = "FRAGMENT_SPREAD"
	LocInlineFragment     = "INLINE_FRAGMENT"

	LocSchema               = "SCHEMA"
	LocScalar               = "SCALAR"
	LocObject               = "OBJECT"
	LocFieldDefinition      = "FIELD_DEFINITION"
	LocArgumentDefinition   = "ARGUMENT_DEFINITION"
	LocInterface            = "INTERFACE"
	LocUnion                = "UNION"
	LocEnum                 = "ENUM"
	LocEnumValue            = "ENUM_VALUE"
	LocInputObject          = "INPUT_OBJECT"
	LocInputFieldDefinition = "INPUT_FIELD_DEFINITION"
)
