// Package docs holds the OpenAPI description served at /swagger.
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
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to /profile, or back to /login on failure"},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Display name", "name": "name", "in": "formData"},
                    {"type": "string", "description": "musician, band_member or event_organizer", "name": "role", "in": "formData"},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Instrument", "name": "instrument", "in": "formData"},
                    {"type": "file", "description": "Profile picture", "name": "profile_picture", "in": "formData"},
                    {"type": "file", "description": "Video", "name": "video", "in": "formData"},
                    {"type": "file", "description": "Audio", "name": "audio", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /profile, or to /login when the email is taken"},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "303": {"description": "Redirect to /"},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RenderModel"}},
                    "303": {"description": "Redirect to /login when not logged in"},
                    "404": {"description": "Not Found", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/artists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List artists",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Artist"}}}
                }
            }
        },
        "/bands": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List bands",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Band"}}}
                }
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}}
                }
            }
        },
        "/add-event": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["catalog"],
                "summary": "Add an event",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "file", "description": "Poster", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /events"},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Artist": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "genre": {"type": "string"},
                "description": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "domain.Band": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "image_url": {"type": "string"},
                "organizer_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "description": {"type": "string"},
                "instrument": {"type": "string"},
                "profile_picture": {"type": "string"},
                "video": {"type": "string"},
                "audio": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.RenderModel": {
            "type": "object",
            "properties": {
                "view": {"type": "string", "enum": ["profile_musician", "profile_band", "profile_organizer"]},
                "user": {"$ref": "#/definitions/domain.User"},
                "bands": {"type": "array", "items": {"$ref": "#/definitions/domain.Band"}},
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "gigcircle",
	Description:      "Community site for musicians, bands and event organizers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
