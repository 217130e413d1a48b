// The OpenAPI document served under /docs. Keep it in step with the
// handler annotations when routes change.

package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/attachments/{fileId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/octet-stream"],
                "tags": ["attachments"],
                "summary": "Download an attachment",
                "parameters": [
                    {"type": "string", "description": "File ID", "name": "fileId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/events": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Global audit trail of folder and note mutations, newest first.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"maximum": 100, "minimum": 1, "type": "integer", "description": "Limit (default: 20, max: 100)", "name": "limit", "in": "query"},
                    {"maximum": 50000, "minimum": 0, "type": "integer", "description": "Offset (0-50,000)", "name": "offset", "in": "query"},
                    {"type": "string", "description": "Only events of this folder or note", "name": "aggregate_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/events.ListEventsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/folders": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["folders"],
                "summary": "List folders",
                "parameters": [
                    {"maximum": 100, "minimum": 1, "type": "integer", "description": "Limit (default: 20, max: 100)", "name": "limit", "in": "query"},
                    {"maximum": 50000, "minimum": 0, "type": "integer", "description": "Offset (0-50,000)", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/folders.ListFoldersResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["folders"],
                "summary": "Create a folder",
                "parameters": [
                    {"description": "Create folder request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/folders.CreateFolderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Folder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/folders/{folderId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["folders"],
                "summary": "Get a folder",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Folder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["folders"],
                "summary": "Update a folder",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"description": "Update folder request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/folders.UpdateFolderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Folder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["folders"],
                "summary": "Delete a folder",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/folders/{folderId}/notes": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List notes of a folder",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"maximum": 100, "minimum": 1, "type": "integer", "description": "Limit (default: 20, max: 100)", "name": "limit", "in": "query"},
                    {"maximum": 50000, "minimum": 0, "type": "integer", "description": "Offset (0-50,000)", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notes.ListNotesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note in a folder",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"description": "Create note request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/folders/{folderId}/notes/{noteId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Get a note",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"type": "string", "description": "Note ID", "name": "noteId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"type": "string", "description": "Note ID", "name": "noteId", "in": "path", "required": true},
                    {"description": "Update note request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.UpdateNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"type": "string", "description": "Note ID", "name": "noteId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/folders/{folderId}/notes/{noteId}/attachments": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["attachments"],
                "summary": "Upload an attachment",
                "parameters": [
                    {"type": "string", "description": "Folder ID", "name": "folderId", "in": "path", "required": true},
                    {"type": "string", "description": "Note ID", "name": "noteId", "in": "path", "required": true},
                    {"type": "file", "description": "File to attach", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/attachments.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Returns the owner id every folder and note is scoped to",
                "produces": ["application/json"],
                "tags": ["identity"],
                "summary": "Get current owner",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        }
    },
    "definitions": {
        "attachments.UploadResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string", "example": "/api/v1/attachments/683cdb8aa96ad71e8e075bd1"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "aggregate_id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd2"},
                "created_at": {"type": "string", "example": "2025-06-01T23:00:26.007Z"},
                "id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd3"},
                "payload": {"type": "object", "additionalProperties": {}},
                "type": {"type": "string", "example": "NOTE_CREATED"}
            }
        },
        "domain.Folder": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2025-06-01T23:00:26.005Z"},
                "id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd1"},
                "last_updated_at": {"type": "string", "example": "2025-06-02T08:12:44.120Z"},
                "name": {"type": "string", "example": "Vacations 2024"},
                "owner_id": {"type": "string", "example": "VbBpXk3w1cTQ0e5Hd7yZ"}
            }
        },
        "domain.Note": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Sunscreen, towel, book"},
                "created_at": {"type": "string", "example": "2025-06-01T23:00:26.005Z"},
                "folder_id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd1"},
                "id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd2"},
                "last_updated_at": {"type": "string", "example": "2025-06-01T23:00:26.005Z"},
                "title": {"type": "string", "example": "Packing list"}
            }
        },
        "events.ListEventsResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "limit": {"type": "integer", "example": 20},
                "offset": {"type": "integer", "example": 0}
            }
        },
        "folders.CreateFolderRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200, "example": "Vacations 2024"}
            }
        },
        "folders.ListFoldersResponse": {
            "type": "object",
            "properties": {
                "folders": {"type": "array", "items": {"$ref": "#/definitions/domain.Folder"}},
                "limit": {"type": "integer", "example": 20},
                "offset": {"type": "integer", "example": 0}
            }
        },
        "folders.UpdateFolderRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 200, "example": "Trips"}
            }
        },
        "httperr.E": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Bad Request"}
            }
        },
        "notes.CreateNoteRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "content": {"type": "string", "maxLength": 100000, "example": "Passport, charger, sunscreen"},
                "title": {"type": "string", "maxLength": 200, "example": "Packing list"}
            }
        },
        "notes.ListNotesResponse": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer", "example": 20},
                "notes": {"type": "array", "items": {"$ref": "#/definitions/domain.Note"}},
                "offset": {"type": "integer", "example": 0}
            }
        },
        "notes.UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "maxLength": 100000, "example": "Passport, charger"},
                "title": {"type": "string", "maxLength": 200, "example": "Packing list v2"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "NoteLedger API",
	Description:      "Folders and notes with an append-only audit trail and live event stream.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
