package kaltura

// defaultListPageSize is the page size used when walking the full app-token
// list. The platform caps pageSize at 500.
const defaultListPageSize = 500

// AddAppToken creates a new app token and returns the authoritative object,
// including the server-assigned id and secret token value.
func (c *Client) AddAppToken(token *AppToken) (*AppToken, error) {
	obj, err := objectParam("KalturaAppToken", token)
	if err != nil {
		return nil, err
	}
	created := AppToken{}
	if err := c.callService("apptoken", "add", map[string]any{"appToken": obj}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetAppToken(id string) (*AppToken, error) {
	token := AppToken{}
	if err := c.callService("apptoken", "get", map[string]any{"id": id}, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) UpdateAppToken(id string, token *AppToken) (*AppToken, error) {
	obj, err := objectParam("KalturaAppToken", token)
	if err != nil {
		return nil, err
	}
	updated := AppToken{}
	if err := c.callService("apptoken", "update", map[string]any{"id": id, "appToken": obj}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAppToken(id string) error {
	return c.callService("apptoken", "delete", map[string]any{"id": id}, nil)
}

// ListAppTokens fetches one page of app tokens. filter and pager may be nil.
func (c *Client) ListAppTokens(filter *AppTokenFilter, pager *FilterPager) (*AppTokenListResponse, error) {
	params := map[string]any{}
	if filter != nil {
		obj, err := objectParam("KalturaAppTokenFilter", filter)
		if err != nil {
			return nil, err
		}
		params["filter"] = obj
	}
	if pager != nil {
		obj, err := objectParam("KalturaFilterPager", pager)
		if err != nil {
			return nil, err
		}
		params["pager"] = obj
	}
	resp := AppTokenListResponse{}
	if err := c.callService("apptoken", "list", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAllAppTokens walks every page of the app-token list, so callers are not
// silently truncated to the first page.
func (c *Client) ListAllAppTokens() ([]AppToken, error) {
	pageSize := c.listPageSize
	if pageSize == 0 {
		pageSize = defaultListPageSize
	}
	all := []AppToken{}
	for pageIndex := 1; ; pageIndex++ {
		resp, err := c.ListAppTokens(&AppTokenFilter{}, &FilterPager{PageSize: pageSize, PageIndex: pageIndex})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Objects...)
		if len(resp.Objects) == 0 || len(all) >= resp.TotalCount {
			return all, nil
		}
	}
}
