// Package types declares the entities shared by the client and the backend:
// User, Message, Conversation, Session and Context, together with their
// enums, value objects, tagged unions and derived payloads.
//
// Each entity has one canonical field table (an unexported constructor such
// as userFields). Create, Update and list payloads are derived from a fresh
// copy of that table with Omit, Pick, Partial and Extend:
//
//	CreateUserSchema = dsl.MustBind[CreateUser](userFields().Omit("id", "createdAt", "updatedAt", "lastActiveAt"))
//
// Update payloads drop the identity, the creation time and every owner
// reference (userId, conversationId), so an update cannot move an entity to
// another owner.
//
// All schemas are safe for concurrent use.
package types
