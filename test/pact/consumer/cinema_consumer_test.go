//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/cinema-booking-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type moviePayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Rating      string `json:"rating"`
	RuntimeMins int    `json:"runtimeMins"`
}

type ticketPayload struct {
	ID          int64 `json:"id"`
	CustomerID  int64 `json:"customerId"`
	ScreeningID int64 `json:"screeningId"`
	NumSeats    int   `json:"numSeats"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestBoxOfficeContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	token := pacttest.BearerToken(t)
	authorization := matchers.Term("Bearer "+token, `^Bearer [A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+$`)
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCatalogueSeeded).
		UponReceiving("a request to fetch an existing movie").
		WithRequest("GET", fmt.Sprintf("/movies/%d", pacttest.ExistingMovieID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", authorization)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"status": matchers.S("success"),
				"data": matchers.Map{
					"id":          matchers.Like(pacttest.ExistingMovieID),
					"title":       matchers.Like("Inception"),
					"rating":      matchers.Like("PG-13"),
					"description": matchers.Like("A thief who steals corporate secrets."),
					"runtimeMins": matchers.Like(148),
					"createdAt":   matchers.Like("2026-10-01T09:00:00Z"),
					"updatedAt":   matchers.Like("2026-10-01T09:00:00Z"),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCinemaEmpty).
		UponReceiving("a request for a missing movie").
		WithRequest("GET", fmt.Sprintf("/movies/%d", pacttest.MissingMovieID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", authorization)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"status":  matchers.S("error"),
				"message": matchers.Like(fmt.Sprintf("Movie with id %d not found.", pacttest.MissingMovieID)),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogueSeeded).
		UponReceiving("a request to book seats for a screening").
		WithRequest("POST", fmt.Sprintf("/customers/%d/screenings/%d", pacttest.ExistingCustomerID, pacttest.ExistingScreeningID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", authorization)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"numSeats": matchers.Like(2)})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"status": matchers.S("success"),
				"data": matchers.Map{
					"id":          matchers.Like(3),
					"customerId":  matchers.Like(pacttest.ExistingCustomerID),
					"screeningId": matchers.Like(pacttest.ExistingScreeningID),
					"numSeats":    matchers.Like(2),
					"createdAt":   matchers.Like("2026-10-01T09:00:00Z"),
					"updatedAt":   matchers.Like("2026-10-01T09:00:00Z"),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newBoxOfficeClient(config, token)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		movie, err := client.GetMovie(ctx, pacttest.ExistingMovieID)
		if err != nil {
			return fmt.Errorf("get movie: %w", err)
		}
		if movie.ID != pacttest.ExistingMovieID {
			return fmt.Errorf("expected movie id %d, got %+v", pacttest.ExistingMovieID, movie)
		}

		if _, err := client.GetMovie(ctx, pacttest.MissingMovieID); err == nil {
			return fmt.Errorf("expected 404 for movie %d", pacttest.MissingMovieID)
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %v", err)
		}

		ticket, err := client.BookTicket(ctx, pacttest.ExistingCustomerID, pacttest.ExistingScreeningID, 2)
		if err != nil {
			return fmt.Errorf("book ticket: %w", err)
		}
		if ticket.NumSeats != 2 || ticket.CustomerID != pacttest.ExistingCustomerID {
			return fmt.Errorf("unexpected ticket %+v", ticket)
		}
		return nil
	})
	require.NoError(t, err)
}

type boxOfficeClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newBoxOfficeClient(config pactconsumer.MockServerConfig, token string) *boxOfficeClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &boxOfficeClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		token:      token,
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *boxOfficeClient) GetMovie(ctx context.Context, id int64) (*moviePayload, error) {
	var movie moviePayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *boxOfficeClient) BookTicket(ctx context.Context, customerID, screeningID int64, seats int) (*ticketPayload, error) {
	var ticket ticketPayload
	path := fmt.Sprintf("/customers/%d/screenings/%d", customerID, screeningID)
	if err := c.do(ctx, http.MethodPost, path, map[string]int{"numSeats": seats}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *boxOfficeClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return apiError{status: res.StatusCode, message: env.Message}
	}
	return json.Unmarshal(env.Data, out)
}
