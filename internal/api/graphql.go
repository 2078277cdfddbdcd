package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"hackevents/internal/log"
	"hackevents/internal/model"
)

const eventFields = `
      id
      name
      event_type
      permission
      start_time
      end_time
      description
      speakers {
        name
      }
      public_url
      private_url
      related_events`

const queryAllEvents = `query GetAllEvents {
    sampleEvents {` + eventFields + `
    }
  }`

const queryEventByID = `query GetEventById($id: Float!) {
    sampleEvent(id: $id) {` + eventFields + `
    }
  }`

// GraphQLSource talks to the upstream GraphQL API directly.
type GraphQLSource struct {
	Endpoint string
	client   *graphql.Client
}

// NewGraphQLSource builds a source for endpoint (DefaultEndpoint when blank). hc may be nil.
func NewGraphQLSource(endpoint string, hc *http.Client) *GraphQLSource {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	c := graphql.NewClient(endpoint, graphql.WithHTTPClient(hc))
	c.Log = func(s string) { log.Debug("graphql", "msg", s) }
	return &GraphQLSource{Endpoint: endpoint, client: c}
}

func (s *GraphQLSource) FetchAllEvents(ctx context.Context) ([]model.Event, error) {
	var resp struct {
		SampleEvents []model.Event `json:"sampleEvents"`
	}
	if err := s.client.Run(ctx, graphql.NewRequest(queryAllEvents), &resp); err != nil {
		return nil, &FetchError{Op: "events", Err: err}
	}
	if resp.SampleEvents == nil {
		return []model.Event{}, nil
	}
	return resp.SampleEvents, nil
}

func (s *GraphQLSource) FetchEventByID(ctx context.Context, id int) (model.Event, error) {
	req := graphql.NewRequest(queryEventByID)
	req.Var("id", float64(id))

	var resp struct {
		SampleEvent *model.Event `json:"sampleEvent"`
	}
	if err := s.client.Run(ctx, req, &resp); err != nil {
		return model.Event{}, &FetchError{Op: "event", Err: err}
	}
	if resp.SampleEvent == nil {
		return model.Event{}, ErrNotFound
	}
	return *resp.SampleEvent, nil
}
