// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package phttp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/phttp"
	"code.hybscloud.com/phttp/message"
)

func TestListenConnect_EchoOverRealTCP(t *testing.T) {
	t.Parallel()

	ln, err := phttp.Listen("tcp", "127.0.0.1:0", nil)
	require.NoError(t, err)
	defer ln.Close()

	runDone := make(chan error, 1)
	go func() {
		srv, err := ln.Accept()
		if err != nil {
			runDone <- err
			return
		}
		runDone <- srv.Run(func(req message.Request) message.Response {
			return message.Response{
				Line: message.ResponseLine{Code: 200, Message: "OK"},
				Body: req.Body,
			}
		})
	}()

	c, err := phttp.Connect("tcp", ln.Addr().String(), nil)
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Exec(message.NewRequest("ECHO", "/", []byte("hi there")))
	require.NoError(t, err)
	require.Equal(t, int32(200), resp.Line.Code)
	require.Equal(t, "hi there", string(resp.Body))

	require.NoError(t, c.Close())
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to finish")
	}
}
