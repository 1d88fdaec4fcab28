package store

// documentSchema is the JSON Schema every stored or imported document must
// satisfy before it is decoded.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["fragrances", "patterns"],
  "properties": {
    "fragrances": {
      "type": "array",
      "items": { "$ref": "#/$defs/fragrance" }
    },
    "patterns": {
      "type": "array",
      "items": { "$ref": "#/$defs/pattern" }
    }
  },
  "$defs": {
    "fragrance": {
      "type": "object",
      "required": ["id", "name"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "description": { "type": "string" }
      }
    },
    "choice": {
      "type": "object",
      "required": ["id", "label", "fragranceIds"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "fragranceIds": {
          "type": "array",
          "items": { "type": "string" },
          "uniqueItems": true
        }
      }
    },
    "question": {
      "type": "object",
      "required": ["id", "number", "text", "choices"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "number": { "type": "integer", "minimum": 1, "maximum": 7 },
        "text": { "type": "string" },
        "choices": {
          "type": "array",
          "items": { "$ref": "#/$defs/choice" },
          "minItems": 4,
          "maxItems": 4
        }
      }
    },
    "note": {
      "type": "object",
      "required": ["id", "questionNumber", "text", "createdAt"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "questionNumber": { "type": "integer", "minimum": 0, "maximum": 7 },
        "text": { "type": "string" },
        "createdAt": { "type": "string" }
      }
    },
    "pattern": {
      "type": "object",
      "required": ["id", "name", "createdAt", "updatedAt", "questions", "notes"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "createdAt": { "type": "string" },
        "updatedAt": { "type": "string" },
        "questions": {
          "type": "array",
          "items": { "$ref": "#/$defs/question" },
          "maxItems": 7
        },
        "notes": {
          "type": "array",
          "items": { "$ref": "#/$defs/note" }
        }
      }
    }
  }
}`
