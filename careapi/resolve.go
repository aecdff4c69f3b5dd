package careapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Clients returns the full client list in upstream order.
func (c *Client) Clients(ctx context.Context) ([]Record, error) {
	body, err := c.get(ctx, "/klient")
	if err != nil {
		return nil, err
	}

	var page clientPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("careapi: decode client list: %w", err)
	}

	clients := make([]Record, 0, len(page.Content))
	for i, raw := range page.Content {
		var cl Record
		if err := json.Unmarshal(raw, &cl); err != nil {
			return nil, fmt.Errorf("careapi: decode client %d: %w", i, err)
		}
		cl.Raw = raw
		clients = append(clients, cl)
	}
	return clients, nil
}

// FindClient returns the first client whose first and last name match exactly.
// Matching is case-sensitive. Returns ErrClientNotFound if nobody matches.
func (c *Client) FindClient(ctx context.Context, firstName, lastName string) (*Record, error) {
	clients, err := c.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].Person.FirstName == firstName && clients[i].Person.LastName == lastName {
			return &clients[i], nil
		}
	}
	c.log.Info().Str("firstname", firstName).Str("lastname", lastName).Msg("client not found")
	return nil, ErrClientNotFound
}

// ClientID resolves a client name to its identifier.
func (c *Client) ClientID(ctx context.Context, firstName, lastName string) (ID, error) {
	cl, err := c.FindClient(ctx, firstName, lastName)
	if err != nil {
		return "", err
	}
	return cl.ID, nil
}

// Documents returns the document groups of a client.
func (c *Client) Documents(ctx context.Context, clientID ID) ([]DocumentGroup, error) {
	body, err := c.get(ctx, "/klient/"+url.PathEscape(clientID.String())+"/pflegedoku")
	if err != nil {
		return nil, err
	}

	var list documentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("careapi: decode document list: %w", err)
	}
	return list.Groups, nil
}

// DocumentID returns the first document of type t whose status is accepted.
// Returns ErrDocumentNotFound if the client has no document of that type and
// ErrDocumentStatus if none of them is in an accepted state.
func (c *Client) DocumentID(ctx context.Context, clientID ID, t DocumentType) (ID, error) {
	groups, err := c.Documents(ctx, clientID)
	if err != nil {
		return "", err
	}

	seen := false
	for _, g := range groups {
		if g.Type != t {
			continue
		}
		for _, doc := range g.Documents {
			seen = true
			if doc.Status.Accepted() {
				return doc.ID, nil
			}
			c.log.Debug().Str("type", string(t)).Str("status", string(doc.Status)).Msg("skipping document")
		}
	}

	if seen {
		c.log.Info().Str("type", string(t)).Msg("document status not found")
		return "", ErrDocumentStatus
	}
	c.log.Info().Str("type", string(t)).Msg("document not found")
	return "", ErrDocumentNotFound
}

// Detail fetches the detail payload of a document.
func (c *Client) Detail(ctx context.Context, t DocumentType, docID ID) ([]byte, error) {
	pattern, ok := detailPaths[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, t)
	}
	return c.get(ctx, fmt.Sprintf(pattern, url.PathEscape(docID.String())))
}

// Fetch resolves the client and its document of type t and returns the detail payload.
func (c *Client) Fetch(ctx context.Context, firstName, lastName string, t DocumentType) ([]byte, error) {
	clientID, err := c.ClientID(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	docID, err := c.DocumentID(ctx, clientID, t)
	if err != nil {
		return nil, err
	}
	return c.Detail(ctx, t, docID)
}
