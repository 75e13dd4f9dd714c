package trip

func (c *Client) SetMaxBody(n int64) { c.maxBody = n }
