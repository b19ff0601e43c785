package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultRestTimeout = 5 * time.Second

type restProperties struct {
	Endpoint string
	Timeout  time.Duration
}

type userRestRepository struct {
	endpoint string
	client   *http.Client
}

func (ur *userRestRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	var user User
	reqURL := ur.endpoint + "/users?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return user, false, errors.Wrap(err, "error creating user request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ur.client.Do(req)
	if err != nil {
		return user, false, errors.Wrapf(err, "error getting user %v", email)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return user, false, nil
	}
	if resp.StatusCode >= 300 {
		return user, false, errors.Errorf("got bad response from user service: %v", resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, false, errors.Wrap(err, "error unmarshalling user")
	}
	if !strings.EqualFold(user.Email, email) {
		return User{}, false, errors.Errorf("user service returned user %q for %v", user.Email, email)
	}
	return user, true, nil
}

func newUserRestRepository(p restProperties) *userRestRepository {
	if p.Timeout <= 0 {
		p.Timeout = defaultRestTimeout
	}
	return &userRestRepository{
		endpoint: strings.TrimSuffix(p.Endpoint, "/"),
		client:   &http.Client{Timeout: p.Timeout},
	}
}
