package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/normalize"
	"cvgen-backend/cv/registry"
)

// Client fetches raw records from the per-category backend endpoints and
// the subject profile service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a record client for the given API base.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, endpoint, subjectID string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s?subjectId=%s", c.BaseURL, endpoint, url.QueryEscape(subjectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint %s returned status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FetchCategory retrieves and decodes one category's raw records.
func (c *Client) FetchCategory(ctx context.Context, section registry.Section, subjectID string) ([]map[string]any, error) {
	body, err := c.get(ctx, section.Endpoint, subjectID)
	if err != nil {
		return nil, err
	}
	return decodeRecords(body, section.PayloadKey), nil
}

// FetchSubject retrieves the subject profile.
func (c *Client) FetchSubject(ctx context.Context, subjectID string) (model.Subject, error) {
	body, err := c.get(ctx, "profile", subjectID)
	if err != nil {
		return model.Subject{}, err
	}
	raw := decodeObject(body, "data")
	if raw == nil {
		return model.Subject{}, fmt.Errorf("profile response has no recognizable payload")
	}
	return subjectFromRaw(subjectID, raw), nil
}

// decodeRecords tolerates the three envelope shapes the record endpoints
// are known to produce. The success-flag envelope is the canonical one; the
// bare-key and raw-array shapes are compatibility shims for older backends.
// Anything else decodes to no records.
func decodeRecords(body []byte, payloadKey string) []map[string]any {
	var asArray []map[string]any
	if err := json.Unmarshal(body, &asArray); err == nil {
		return asArray
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	if flag, ok := envelope["success"]; ok {
		var success bool
		if err := json.Unmarshal(flag, &success); err != nil || !success {
			return nil
		}
	}

	payload, ok := envelope[payloadKey]
	if !ok {
		return nil
	}
	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil
	}
	return records
}

// decodeObject applies the same envelope tolerance for single-object
// payloads such as the profile.
func decodeObject(body []byte, payloadKey string) map[string]any {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	if flag, ok := envelope["success"]; ok {
		var success bool
		if err := json.Unmarshal(flag, &success); err != nil || !success {
			return nil
		}
	}

	if payload, ok := envelope[payloadKey]; ok {
		var obj map[string]any
		if err := json.Unmarshal(payload, &obj); err == nil {
			return obj
		}
		return nil
	}

	// Raw object with no envelope at all.
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}
	delete(obj, "success")
	return obj
}

var subjectFields = []normalize.Field{
	{Attr: "name", Candidates: []string{"Name", "name", "fullName", "Full_Name"}},
	{Attr: "designation", Candidates: []string{"Designation", "designation", "role"}},
	{Attr: "department", Candidates: []string{"Department", "department", "dept"}},
	{Attr: "institution", Candidates: []string{"Institution", "institution", "college", "university"}},
	{Attr: "email", Candidates: []string{"Email", "email", "emailId"}},
	{Attr: "phone", Candidates: []string{"Phone", "phone", "mobile", "Contact_No"}},
	{Attr: "address", Candidates: []string{"Address", "address"}},
	{Attr: "orcid", Candidates: []string{"ORCID", "orcid", "orcidId"}},
}

func subjectFromRaw(subjectID string, raw map[string]any) model.Subject {
	rec := normalize.Record(subjectFields, raw, "")
	blank := func(v string) string {
		if v == normalize.DefaultFallback {
			return ""
		}
		return v
	}
	return model.Subject{
		ID:          subjectID,
		Name:        blank(rec["name"]),
		Designation: blank(rec["designation"]),
		Department:  blank(rec["department"]),
		Institution: blank(rec["institution"]),
		Email:       blank(rec["email"]),
		Phone:       blank(rec["phone"]),
		Address:     blank(rec["address"]),
		ORCID:       blank(rec["orcid"]),
	}
}
