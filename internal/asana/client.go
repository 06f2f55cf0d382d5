// Package asana provides a thin Asana JSON API client that only fetches the
// completed tasks needed for the invoice attachment.
package asana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mic47/platypus-invoices/internal/calendar"
	"github.com/mic47/platypus-invoices/internal/models"
)

const baseURL = "https://app.asana.com/api/1.0"

// wordLenLimit is the longest run of characters a task name may have without
// a break opportunity; longer words get zero-width spaces inserted so the
// rendered attachment can wrap them.
const wordLenLimit = 20

var (
	ErrInvalidToken = errors.New("the provided Asana access token is invalid")
)

type Client struct {
	token      string
	httpClient *http.Client
}

func New(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s%s?%s", baseURL, path, query.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrInvalidToken
	}
	if resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("Asana request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}

type projectData struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

type projectsResponse struct {
	Data     []projectData `json:"data"`
	NextPage *nextPage     `json:"next_page"`
}

type nextPage struct {
	Offset string `json:"offset"`
}

// ProjectNames returns a mapping of project gid to project name for the
// workspace.
func (c *Client) ProjectNames(ctx context.Context, workspace string) (map[string]string, error) {
	projects := map[string]string{}
	offset := ""
	for {
		query := url.Values{"workspace": {workspace}}
		if offset != "" {
			query.Set("offset", offset)
		}

		resp, err := c.get(ctx, "/projects", query)
		if err != nil {
			return nil, err
		}

		var page projectsResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		for _, project := range page.Data {
			projects[project.GID] = project.Name
		}

		if page.NextPage == nil {
			return projects, nil
		}
		offset = page.NextPage.Offset
	}
}

type taskData struct {
	Name        string        `json:"name"`
	Completed   bool          `json:"completed"`
	CompletedAt *time.Time    `json:"completed_at"`
	Projects    []projectData `json:"projects"`
}

type tasksResponse struct {
	Data     []taskData `json:"data"`
	NextPage *nextPage  `json:"next_page"`
}

// CompletedTasks returns the caller's tasks completed within [from, to],
// sorted by completion day, with project names resolved and long words made
// wrappable.
func (c *Client) CompletedTasks(ctx context.Context, workspace string, from, to time.Time) ([]models.Task, error) {
	projects, err := c.ProjectNames(ctx, workspace)
	if err != nil {
		return nil, err
	}

	var raw []taskData
	offset := ""
	for {
		query := url.Values{
			"workspace":       {workspace},
			"assignee":        {"me"},
			"completed_since": {from.Format("2006-01-02")},
			"opt_fields":      {"name,completed,completed_at,projects"},
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		resp, err := c.get(ctx, "/tasks", query)
		if err != nil {
			return nil, err
		}

		var page tasksResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		raw = append(raw, page.Data...)

		if page.NextPage == nil {
			break
		}
		offset = page.NextPage.Offset
	}

	type dated struct {
		task models.Task
		day  time.Time
	}
	var completed []dated
	for _, task := range raw {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		day := task.CompletedAt.Truncate(24 * time.Hour)
		if day.Before(from) || day.After(to) {
			continue
		}

		var names []string
		for _, project := range task.Projects {
			if name, ok := projects[project.GID]; ok {
				names = append(names, name)
			}
		}

		completed = append(completed, dated{
			task: models.Task{
				Name:           SanitizeLongWords(task.Name, wordLenLimit),
				CompletedAtDay: calendar.PrettyDate(day),
				ProjectsString: strings.Join(names, ", "),
			},
			day: day,
		})
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].day.Before(completed[j].day)
	})

	tasks := make([]models.Task, len(completed))
	for i, d := range completed {
		tasks[i] = d.task
	}
	return tasks, nil
}

// SanitizeLongWords inserts zero-width spaces into words longer than limit so
// they can break across lines in rendered output.
func SanitizeLongWords(sentence string, limit int) string {
	words := strings.Split(sentence, " ")
	out := make([]string, len(words))
	for i, word := range words {
		var chunks []string
		runes := []rune(word)
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		chunks = append(chunks, string(runes))
		out[i] = strings.Join(chunks, "​")
	}
	return strings.Join(out, " ")
}
