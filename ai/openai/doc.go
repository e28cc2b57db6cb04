// Package openai implements the ai service interfaces against
// OpenAI-compatible APIs.
//
// All chat-backed services (ranking, classification, metadata extraction,
// replies) share the configured chat model; embeddings use the configured
// embedding model. Setting Config.BaseURL points every service at a local
// OpenAI-compatible server instead of the hosted API.
//
// Responses are parsed strictly against the shape each prompt asks for.
// Markdown code fences are stripped and common JSON slips repaired before
// parsing, but anything that still doesn't match the expected shape is
// reported as ai.ErrMalformedResponse.
package openai
