package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Orari API",
        "description": "Class schedule administration: public timetable, dashboard and record management.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Token login, refresh and logout"},
        {"name": "Schedules", "description": "Weekly timetable"},
        {"name": "Dashboard", "description": "Signed-in overview"},
        {"name": "Notifications", "description": "Public schedule banners"},
        {"name": "Programs", "description": "Study programs"},
        {"name": "Courses", "description": "Courses within programs"},
        {"name": "Instructors", "description": "Teaching staff"},
        {"name": "Rooms", "description": "Teaching rooms"}
    ],
    "paths": {
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "429": {"description": "Too many failed attempts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Logout", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["Auth"], "summary": "Refresh token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses": {
            "get": {"tags": ["Courses"], "summary": "List courses", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Courses"], "summary": "Create course", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses/{id}": {
            "get": {"tags": ["Courses"], "summary": "Get course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Course ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Courses"], "summary": "Update course", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Course ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Courses"], "summary": "Delete course", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Course ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/dashboard": {
            "get": {"tags": ["Dashboard"], "summary": "Dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/instructors": {
            "get": {"tags": ["Instructors"], "summary": "List instructors", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Instructors"], "summary": "Create instructor", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/instructors/{id}": {
            "get": {"tags": ["Instructors"], "summary": "Get instructor", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Instructor ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Instructors"], "summary": "Update instructor", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Instructor ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Instructors"], "summary": "Delete instructor", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Instructor ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/notifications": {
            "get": {"tags": ["Notifications"], "summary": "List notifications", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Notifications"], "summary": "Create notification", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/notifications/active": {
            "get": {"tags": ["Notifications"], "summary": "List active notifications", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/notifications/{id}": {
            "get": {"tags": ["Notifications"], "summary": "Get notification", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Notification ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Notifications"], "summary": "Update notification", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Notification ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Notifications"], "summary": "Delete notification", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Notification ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/notifications/{id}/active": {
            "patch": {"tags": ["Notifications"], "summary": "Toggle notification", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Notification ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/programs": {
            "get": {"tags": ["Programs"], "summary": "List programs", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Programs"], "summary": "Create program", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgramRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/programs/{id}": {
            "get": {"tags": ["Programs"], "summary": "Get program", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Program ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Programs"], "summary": "Update program", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Program ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgramRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Programs"], "summary": "Delete program", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Program ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/rooms": {
            "get": {"tags": ["Rooms"], "summary": "List rooms", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Rooms"], "summary": "Create room", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/rooms/{id}": {
            "get": {"tags": ["Rooms"], "summary": "Get room", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Room ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Rooms"], "summary": "Update room", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Room ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Rooms"], "summary": "Delete room", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Room ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/schedules": {
            "get": {"tags": ["Schedules"], "summary": "List schedules", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Schedules"], "summary": "Create schedule", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/schedules/public": {
            "get": {"tags": ["Schedules"], "summary": "Public schedule", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "500": {"description": "Read failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/schedules/{id}": {
            "get": {"tags": ["Schedules"], "summary": "Get schedule", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Schedule ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Schedules"], "summary": "Update schedule", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Schedule ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Schedules"], "summary": "Delete schedule", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Schedule ID"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Still referenced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        }
    },
    "definitions": {
        "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "RefreshTokenRequest": {"type": "object", "required": ["refresh_token"], "properties": {"refresh_token": {"type": "string"}}},
        "SetActiveRequest": {"type": "object", "required": ["is_active"], "properties": {"is_active": {"type": "boolean"}}},
        "ProgramRequest": {"type": "object", "required": ["name", "code", "level"], "properties": {"name": {"type": "string"}, "code": {"type": "string"}, "level": {"type": "string", "enum": ["BACHELOR", "MASTER", "PHD"]}}},
        "CourseRequest": {"type": "object", "required": ["program_id", "name", "code"], "properties": {"program_id": {"type": "string"}, "name": {"type": "string"}, "code": {"type": "string"}, "credits": {"type": "integer", "minimum": 1, "maximum": 10}, "ects_credits": {"type": "integer", "minimum": 1, "maximum": 30}, "lecture_hours": {"type": "integer", "minimum": 0, "maximum": 10}, "lab_hours": {"type": "integer", "minimum": 0, "maximum": 10}, "semester": {"type": "integer", "minimum": 1, "maximum": 8}, "year": {"type": "integer", "minimum": 2020, "maximum": 2030}}},
        "InstructorRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "title": {"type": "string"}}},
        "RoomRequest": {"type": "object", "required": ["name", "code"], "properties": {"name": {"type": "string"}, "code": {"type": "string"}, "capacity": {"type": "integer"}, "room_type": {"type": "string", "enum": ["LECTURE", "LAB", "SEMINAR", "COMPUTER_LAB"]}}},
        "ScheduleRequest": {"type": "object", "required": ["course_id", "instructor_id", "room_id", "day_of_week", "session_type"], "properties": {"course_id": {"type": "string"}, "instructor_id": {"type": "string"}, "room_id": {"type": "string"}, "day_of_week": {"type": "integer", "minimum": 1, "maximum": 7}, "start_time": {"type": "string", "example": "09:00"}, "end_time": {"type": "string", "example": "10:30"}, "session_type": {"type": "string", "enum": ["LECTURE", "LAB", "SEMINAR", "EXAM"]}}},
        "NotificationRequest": {"type": "object", "required": ["title", "message", "severity"], "properties": {"title": {"type": "string"}, "message": {"type": "string", "description": "Markdown"}, "severity": {"type": "string", "enum": ["info", "success", "warning", "destructive"]}, "is_active": {"type": "boolean"}, "start_at": {"type": "string", "format": "date-time"}, "end_at": {"type": "string", "format": "date-time"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object", "properties": {"count": {"type": "integer"}}}, "request_id": {"type": "string"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
