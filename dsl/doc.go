// Package dsl provides the schema DSL used to declare the shared entities.
//
// Overview
//   - Leaf schemas: String() with Min/NonEmpty/Email/URL/UUID, Int()/Float()
//     with Min/Max/Positive, Bool(), Time(), Enum(...) and Literal(v).
//   - Containers: Array(elem) and Record(elem) for string-keyed maps.
//   - Objects: Object() declares an ordered field table. Fields are optional
//     unless Required(); Default(v) fills absent or null keys.
//   - Derivation: Omit, Pick, Partial, Extend and Clone return new builders,
//     leaving the receiver untouched.
//   - Typed binding: Bind[T]/MustBind[T] project a table onto struct T using
//     share.ResolveStructKey (share tag, then json tag, then field name).
//   - Unions: Union[I](key, Case[I, V](tag, s)...) selects a variant by its
//     tag before validating the body.
//
// Parse order is the field declaration order, depth-first. Every violation
// is collected unless the context carries share.WithFailFast.
//
// Example
//
//	type Note struct {
//	    ID    string   `json:"id"`
//	    Title string   `json:"title"`
//	    Tags  []string `json:"tags"`
//	}
//
//	note := g.MustBind[Note](g.Object().
//	    Field("id", g.String().UUID()).Required().
//	    Field("title", g.String().NonEmpty()).Required().
//	    Field("tags", g.Array(g.String())).Default([]string{}))
//
//	n, err := share.ParseFrom(ctx, note, share.JSONBytes(data))
package dsl
