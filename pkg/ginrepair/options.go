package ginrepair

import (
	"reflect"

	"github.com/goccy/go-json"
)

// SchemaOption configures an endpoint schema
type SchemaOption func(*EndpointSpec)

// WithSummary sets the endpoint summary
func WithSummary(s string) SchemaOption {
	return func(spec *EndpointSpec) {
		spec.Summary = s
	}
}

// WithDescription sets the endpoint description
func WithDescription(d string) SchemaOption {
	return func(spec *EndpointSpec) {
		spec.Description = d
	}
}

// WithTags adds tags to the endpoint
func WithTags(tags ...string) SchemaOption {
	return func(spec *EndpointSpec) {
		spec.Tags = append(spec.Tags, tags...)
	}
}

// WithRequest declares a JSON request body of type T. The middleware
// returned by OpenAPISchema decodes the body into a *T, retrieved in the
// handler with GetRequest.
func WithRequest[T any]() SchemaOption {
	var zero T
	return func(spec *EndpointSpec) {
		spec.RequestType = reflect.TypeOf(zero)
		spec.decode = func(data []byte) (any, error) {
			req := new(T)
			if err := json.Unmarshal(data, req); err != nil {
				return nil, err
			}
			return req, nil
		}
	}
}

// WithRawBody declares a request body that is passed through undecoded,
// documented with the given content type. Handlers read it with
// GetRawBody.
func WithRawBody(contentType string) SchemaOption {
	return func(spec *EndpointSpec) {
		spec.RawContentType = contentType
	}
}

// WithResponse specifies a response type with status code
func WithResponse[T any](statusCode int, description ...string) SchemaOption {
	var zero T
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	return func(spec *EndpointSpec) {
		if spec.Responses == nil {
			spec.Responses = make(map[int]ResponseSpec)
		}
		spec.Responses[statusCode] = ResponseSpec{
			Type:        reflect.TypeOf(zero),
			Description: desc,
		}
	}
}

// WithDeprecated marks the endpoint as deprecated
func WithDeprecated() SchemaOption {
	return func(spec *EndpointSpec) {
		spec.Deprecated = true
	}
}

// WithRequestExamples adds examples for the request body
func WithRequestExamples(examples map[string]any) SchemaOption {
	return func(spec *EndpointSpec) {
		spec.RequestExamples = examples
	}
}
