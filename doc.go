// Package share holds the data contracts shared by the emlinh-ai client and
// backend: the Schema abstraction, the Issues error model and the input
// sources that feed schemas.
//
// Schemas are built with the dsl package and the concrete contracts (User,
// Message, Conversation, Session, Context and their Create/Update payloads)
// live in the types package.
//
// A parse either succeeds with a fully-defaulted value or fails with Issues,
// one entry per violation in field declaration order:
//
//	msg, err := share.ParseFrom(ctx, types.CreateMessageSchema, share.JSONBytes(body))
//	if iss, ok := share.AsIssues(err); ok {
//		for _, it := range iss {
//			log.Printf("%s: %s", it.Dotted(), it.Message)
//		}
//	}
//
// Null and absent are the same thing: optional fields stay unset and
// defaulted fields receive their default. Parsing an already-parsed value
// again yields an equal value.
package share
