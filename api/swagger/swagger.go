package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Plan API",
        "description": "Lesson plan review workflow and curriculum tree",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Grades",
            "description": "Grade reference data"
        },
        {
            "name": "Curriculums",
            "description": "Curricula and outlines"
        },
        {
            "name": "Modules",
            "description": "Curriculum modules"
        },
        {
            "name": "Lessons",
            "description": "Lessons inside a module"
        },
        {
            "name": "LessonPlans",
            "description": "Lesson plan review workflow"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Database unreachable"
                    }
                }
            }
        },
        "/api/v1/grades": {
            "get": {
                "tags": [
                    "Grades"
                ],
                "summary": "List grades",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/grades/{gradeId}/curriculums": {
            "get": {
                "tags": [
                    "Curriculums"
                ],
                "summary": "List curriculums of a grade",
                "parameters": [
                    {
                        "name": "gradeId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/grades/{gradeId}/modules": {
            "get": {
                "tags": [
                    "Modules"
                ],
                "summary": "List module summaries of a grade",
                "parameters": [
                    {
                        "name": "gradeId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/curriculums": {
            "post": {
                "tags": [
                    "Curriculums"
                ],
                "summary": "Create curriculum",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CurriculumRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/curriculums/{id}": {
            "get": {
                "tags": [
                    "Curriculums"
                ],
                "summary": "Get curriculum with its outline",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Curriculums"
                ],
                "summary": "Update curriculum",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CurriculumRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/modules": {
            "post": {
                "tags": [
                    "Modules"
                ],
                "summary": "Create module",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ModuleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/modules/{moduleId}": {
            "get": {
                "tags": [
                    "Modules"
                ],
                "summary": "Get module detail",
                "parameters": [
                    {
                        "name": "moduleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Modules"
                ],
                "summary": "Update module",
                "description": "Answers with a message only; clients re-read the module.",
                "parameters": [
                    {
                        "name": "moduleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ModuleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Modules"
                ],
                "summary": "Delete module",
                "description": "Soft delete; the envelope code is 31.",
                "parameters": [
                    {
                        "name": "moduleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/modules/{moduleId}/lessons": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "List lessons of a module",
                "parameters": [
                    {
                        "name": "moduleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Create lesson",
                "parameters": [
                    {
                        "name": "moduleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LessonRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/{lessonId}": {
            "put": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Update lesson",
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LessonRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Toggle lesson active flag",
                "description": "Flips is_active and answers code 22 with the lesson.",
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans": {
            "get": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "List lesson plans",
                "parameters": [
                    {
                        "name": "Status",
                        "in": "query",
                        "type": "integer",
                        "enum": [
                            1,
                            2,
                            3,
                            4
                        ]
                    },
                    {
                        "name": "userId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "GradeId",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "ModuleId",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "SearchTerm",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "Page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "PageSize",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Create a draft lesson plan",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateLessonPlanRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans/{id}": {
            "get": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Get lesson plan",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Edit a draft lesson plan",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PlanContent"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Delete a rejected plan",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans/{id}/pending": {
            "post": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Submit a draft for review",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans/{id}/approve": {
            "put": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Approve a pending plan",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans/{id}/reject": {
            "put": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Reject a pending plan",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RejectLessonPlanRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lesson-plans/{id}/draft": {
            "put": {
                "tags": [
                    "LessonPlans"
                ],
                "summary": "Return a rejected plan to draft",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "data": {
                    "type": "object"
                }
            }
        },
        "ModuleRequest": {
            "type": "object",
            "required": [
                "curriculumId",
                "gradeId",
                "semester",
                "name"
            ],
            "properties": {
                "curriculumId": {
                    "type": "integer"
                },
                "gradeId": {
                    "type": "integer"
                },
                "semester": {
                    "type": "integer",
                    "enum": [
                        1,
                        2
                    ]
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "totalPeriods": {
                    "type": "integer"
                }
            }
        },
        "LessonRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "lessonTypeId": {
                    "type": "integer"
                },
                "totalPeriods": {
                    "type": "integer"
                },
                "noteId": {
                    "type": "integer"
                }
            }
        },
        "CurriculumDetailRequest": {
            "type": "object",
            "required": [
                "topic"
            ],
            "properties": {
                "topic": {
                    "type": "string"
                },
                "section": {
                    "type": "string"
                },
                "subSection": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "goal": {
                    "type": "string"
                }
            }
        },
        "CurriculumRequest": {
            "type": "object",
            "required": [
                "gradeId",
                "year"
            ],
            "properties": {
                "gradeId": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                },
                "totalPeriods": {
                    "type": "integer"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/CurriculumDetailRequest"
                    }
                }
            }
        },
        "PlanContent": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "goal": {
                    "type": "string"
                },
                "schoolSupply": {
                    "type": "string"
                },
                "startUp": {
                    "type": "string"
                },
                "knowledge": {
                    "type": "string"
                },
                "practice": {
                    "type": "string"
                },
                "apply": {
                    "type": "string"
                }
            }
        },
        "CreateLessonPlanRequest": {
            "type": "object",
            "required": [
                "gradeId",
                "moduleId",
                "title"
            ],
            "properties": {
                "gradeId": {
                    "type": "integer"
                },
                "moduleId": {
                    "type": "integer"
                },
                "lessonId": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "goal": {
                    "type": "string"
                },
                "schoolSupply": {
                    "type": "string"
                },
                "startUp": {
                    "type": "string"
                },
                "knowledge": {
                    "type": "string"
                },
                "practice": {
                    "type": "string"
                },
                "apply": {
                    "type": "string"
                }
            }
        },
        "RejectLessonPlanRequest": {
            "type": "object",
            "required": [
                "reason"
            ],
            "properties": {
                "reason": {
                    "type": "string"
                }
            }
        }
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
