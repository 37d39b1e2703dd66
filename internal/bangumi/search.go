package bangumi

import (
	"context"
	"fmt"
)

type searchFilter struct {
	Type []int `json:"type"`
	NSFW bool  `json:"nsfw"`
}

type searchRequest struct {
	Keyword string       `json:"keyword"`
	Filter  searchFilter `json:"filter"`
}

type searchResponse struct {
	Data []struct {
		ID int `json:"id"`
	} `json:"data"`
}

// SearchSubjects searches the book catalogue for a free-text keyword and
// returns the candidate subject IDs, capped at the client's search limit.
func (c *Client) SearchSubjects(ctx context.Context, keyword string) ([]int, error) {
	endpoint := fmt.Sprintf("%s/search/subjects?limit=%d", c.baseURL, c.searchLimit)

	payload := searchRequest{
		Keyword: keyword,
		Filter: searchFilter{
			Type: []int{SubjectTypeBook},
			NSFW: true,
		},
	}

	var response searchResponse
	if err := c.postJSON(ctx, endpoint, payload, &response); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(response.Data))
	for _, item := range response.Data {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

// Subject fetches a single subject record by its Bangumi ID.
func (c *Client) Subject(ctx context.Context, id int) (*Subject, error) {
	endpoint := fmt.Sprintf("%s/subjects/%d", c.baseURL, id)

	var subject Subject
	if err := c.getJSON(ctx, endpoint, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// RelatedBookIDs fetches the subjects related to id and returns the IDs of
// those that are books, i.e. sibling volumes of the same series.
func (c *Client) RelatedBookIDs(ctx context.Context, id int) ([]int, error) {
	endpoint := fmt.Sprintf("%s/subjects/%d/subjects", c.baseURL, id)

	var related []RelatedSubject
	if err := c.getJSON(ctx, endpoint, &related); err != nil {
		return nil, err
	}

	var ids []int
	for _, item := range related {
		if item.Type == SubjectTypeBook {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}
