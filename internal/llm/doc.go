// Package llm abstracts the hosted chat-completion services used to
// generate translations, easy-read rewrites, ELI5 sections and image
// descriptions. Two providers exist: OpenAI (the default) and Google
// Gemini. Vision requests are OpenAI-only.
package llm
