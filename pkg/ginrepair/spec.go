// Package ginrepair exposes the repair engine over HTTP with gin. Endpoints
// are registered in an API that doubles as their OpenAPI 3 description.
package ginrepair

import (
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
)

const (
	requestKey = "ginrepair_request"
	rawBodyKey = "ginrepair_raw_body"
)

// API holds the OpenAPI specification
type API struct {
	mu        sync.RWMutex
	endpoints map[string]*EndpointSpec // key: "METHOD /path"
	info      APIInfo
	reflector *jsonschema.Reflector
}

type APIInfo struct {
	Title       string
	Version     string
	Description string
}

type EndpointSpec struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool

	// Type information for schema generation
	RequestType     reflect.Type
	RawContentType  string
	Responses       map[int]ResponseSpec
	RequestExamples map[string]any

	decode func([]byte) (any, error)
}

type ResponseSpec struct {
	Type        reflect.Type
	Description string
}

// New creates a new API instance
func New(title, version string) *API {
	return &API{
		endpoints: make(map[string]*EndpointSpec),
		info: APIInfo{
			Title:   title,
			Version: version,
		},
		reflector: &jsonschema.Reflector{
			AllowAdditionalProperties:  false,
			RequiredFromJSONSchemaTags: true,
		},
	}
}

// SetDescription sets the API description shown in the OpenAPI info block.
func (api *API) SetDescription(d string) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.info.Description = d
}

// OpenAPISchema creates a middleware that registers the endpoint schema and
// reads its request body. A JSON body declared with WithRequest is decoded
// and stored for GetRequest; a raw body is stored for GetRawBody.
func (api *API) OpenAPISchema(method, path string, opts ...SchemaOption) gin.HandlerFunc {
	spec := &EndpointSpec{
		Method:    method,
		Path:      path,
		Responses: make(map[int]ResponseSpec),
	}

	for _, opt := range opts {
		opt(spec)
	}

	key := method + " " + path
	api.mu.Lock()
	api.endpoints[key] = spec
	api.mu.Unlock()

	return func(c *gin.Context) {
		if spec.decode == nil && spec.RawContentType == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortReadError(c, err)
			return
		}

		if spec.decode == nil {
			c.Set(rawBodyKey, body)
			c.Next()
			return
		}

		req, err := spec.decode(body)
		if err != nil {
			writeJSON(c, http.StatusBadRequest, ErrorResponse{
				Error: "invalid request body",
				Details: toViolations(errors.RepairErrors{{
					Position: -1,
					Message:  err.Error(),
					Type:     errors.ErrorTypeDecodeRequest,
				}}),
			})
			c.Abort()
			return
		}
		c.Set(requestKey, req)
		c.Next()
	}
}

func abortReadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeJSON(c, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
		})
	} else {
		writeJSON(c, http.StatusBadRequest, ErrorResponse{
			Error: "failed to read request body",
			Details: toViolations(errors.RepairErrors{{
				Position: -1,
				Message:  err.Error(),
				Type:     errors.ErrorTypeReadInput,
			}}),
		})
	}
	c.Abort()
}

// GetRequest retrieves the decoded request body from context
func GetRequest[T any](c *gin.Context) (*T, bool) {
	val, exists := c.Get(requestKey)
	if !exists {
		return nil, false
	}
	typed, ok := val.(*T)
	return typed, ok
}

// GetRawBody retrieves the raw request body stored by a WithRawBody endpoint
func GetRawBody(c *gin.Context) ([]byte, bool) {
	val, exists := c.Get(rawBodyKey)
	if !exists {
		return nil, false
	}
	body, ok := val.([]byte)
	return body, ok
}

// OpenAPIHandler returns a handler that serves the OpenAPI spec
func (api *API) OpenAPIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeJSON(c, http.StatusOK, api.GenerateOpenAPI())
	}
}

// GenerateOpenAPI generates the OpenAPI 3.0 specification
func (api *API) GenerateOpenAPI() map[string]any {
	api.mu.RLock()
	defer api.mu.RUnlock()

	paths := make(map[string]any)
	components := map[string]any{
		"schemas": make(map[string]any),
	}

	for _, endpoint := range api.endpoints {
		openAPIPath := ConvertGinPathToOpenAPI(endpoint.Path)

		pathItem, ok := paths[openAPIPath].(map[string]any)
		if !ok {
			pathItem = make(map[string]any)
			paths[openAPIPath] = pathItem
		}
		pathItem[strings.ToLower(endpoint.Method)] = api.buildOperation(endpoint, openAPIPath, components)
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       api.info.Title,
			"version":     api.info.Version,
			"description": api.info.Description,
		},
		"paths":      paths,
		"components": components,
	}
}

// buildOperation creates an OpenAPI operation object for an endpoint
func (api *API) buildOperation(endpoint *EndpointSpec, openAPIPath string, components map[string]any) map[string]any {
	operation := make(map[string]any)

	if endpoint.Summary != "" {
		operation["summary"] = endpoint.Summary
	}
	if endpoint.Description != "" {
		operation["description"] = endpoint.Description
	}
	if len(endpoint.Tags) > 0 {
		operation["tags"] = endpoint.Tags
	}
	if endpoint.Deprecated {
		operation["deprecated"] = true
	}

	// Path parameters are documented as plain strings
	if names := ExtractPathParameters(openAPIPath); len(names) > 0 {
		params := make([]any, 0, len(names))
		for _, name := range names {
			params = append(params, map[string]any{
				"name":     name,
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
		operation["parameters"] = params
	}

	if requestBody := api.buildRequestBody(endpoint, components); requestBody != nil {
		operation["requestBody"] = requestBody
	}

	operation["responses"] = api.buildResponses(endpoint, components)

	return operation
}

// buildRequestBody creates the request body object for an endpoint
func (api *API) buildRequestBody(endpoint *EndpointSpec, components map[string]any) map[string]any {
	if endpoint.RawContentType != "" {
		return map[string]any{
			"required": true,
			"content": map[string]any{
				endpoint.RawContentType: map[string]any{
					"schema": map[string]any{"type": "string"},
				},
			},
		}
	}
	if endpoint.RequestType == nil {
		return nil
	}

	schema, err := api.schemaFor(endpoint.RequestType, components)
	if err != nil {
		return nil
	}

	content := map[string]any{"schema": schema}
	if len(endpoint.RequestExamples) > 0 {
		content["examples"] = endpoint.RequestExamples
	}

	return map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": content,
		},
	}
}

// buildResponses creates the responses object for an endpoint
func (api *API) buildResponses(endpoint *EndpointSpec, components map[string]any) map[string]any {
	responses := make(map[string]any)

	for statusCode, resp := range endpoint.Responses {
		schema, err := api.schemaFor(resp.Type, components)
		if err != nil {
			continue
		}
		responses[strconv.Itoa(statusCode)] = map[string]any{
			"description": resp.Description,
			"content": map[string]any{
				"application/json": map[string]any{"schema": schema},
			},
		}
	}

	return responses
}

// schemaFor reflects t and moves its definitions into components. The
// returned schema references them.
func (api *API) schemaFor(t reflect.Type, components map[string]any) (map[string]any, error) {
	schema, err := generateSchemaFromType(api.reflector, t)
	if err != nil {
		return nil, err
	}

	if defs, ok := schema["$defs"].(map[string]any); ok {
		for name, def := range defs {
			components["schemas"].(map[string]any)[name] = def
		}
	}
	delete(schema, "$defs")
	delete(schema, "$id")
	return schema, nil
}

// MarshalOpenAPI returns the OpenAPI spec as JSON bytes
func (api *API) MarshalOpenAPI() ([]byte, error) {
	return json.MarshalIndent(api.GenerateOpenAPI(), "", "  ")
}

// ConvertGinPathToOpenAPI converts Gin path format to OpenAPI format
// e.g., /users/:id -> /users/{id}
func ConvertGinPathToOpenAPI(ginPath string) string {
	segments := strings.Split(ginPath, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// ExtractPathParameters extracts parameter names from an OpenAPI path
// e.g., /users/{id}/posts/{postId} -> ["id", "postId"]
func ExtractPathParameters(path string) []string {
	var params []string
	for {
		start := strings.Index(path, "{")
		if start == -1 {
			break
		}
		end := strings.Index(path[start:], "}")
		if end == -1 {
			break
		}
		params = append(params, path[start+1:start+end])
		path = path[start+end+1:]
	}
	return params
}

// FixSchemaRefs recursively fixes $ref paths and removes $schema property
func FixSchemaRefs(data any) any {
	switch v := data.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			if key == "$schema" {
				continue
			}
			if refStr, ok := value.(string); ok && key == "$ref" && strings.HasPrefix(refStr, "#/$defs/") {
				result[key] = "#/components/schemas/" + refStr[len("#/$defs/"):]
				continue
			}
			result[key] = FixSchemaRefs(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = FixSchemaRefs(item)
		}
		return result
	default:
		return v
	}
}

// generateSchemaFromType reflects a JSON schema for t and rewrites it for
// use inside an OpenAPI document
func generateSchemaFromType(reflector *jsonschema.Reflector, t reflect.Type) (map[string]any, error) {
	data, err := json.Marshal(reflector.ReflectFromType(t))
	if err != nil {
		return nil, err
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil, err
	}
	if fixed, ok := FixSchemaRefs(schemaMap).(map[string]any); ok {
		return fixed, nil
	}
	return schemaMap, nil
}
