// Copyright 2021 The captoken Authors
// This file is part of the captoken library.
//
// The captoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The captoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the captoken library. If not, see <https://mit-license.org/>.

package captoken

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	hostUrl string
	timeOut string
}

type jsonRPCReq struct {
	JsonRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type jsonRPCResp struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result"`
	Error   *RPCError   `json:"error"`
	ID      int         `json:"id"`
}

func NewClient(url, timeOut string) *Client {
	return &Client{
		hostUrl: url,
		timeOut: timeOut,
	}
}

// CallMethod executes a JSON-RPC call and unmarshals the result into out.
func (cli *Client) CallMethod(id int, methodname string, params interface{}, out interface{}) error {
	client := resty.New()
	timeDur, err := time.ParseDuration(cli.timeOut)
	if err != nil {
		return err
	}
	client = client.SetTimeout(timeDur)
	req := &jsonRPCReq{
		JsonRPC: jsonrpcVersion,
		ID:      id,
		Method:  methodname,
		Params:  params,
	}
	// The result must be a pointer so that response json can unmarshal into it.
	var resp *jsonRPCResp = nil
	_, err = client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		Post(cli.hostUrl)
	if err != nil {
		return err
	}
	if resp == nil {
		return fmt.Errorf("resp null")
	}
	if resp.Error != nil {
		return resp.Error
	}
	js, err := json.Marshal(resp.Result)
	if err != nil {
		return err
	}
	return json.Unmarshal(js, out)
}
