// SPDX-License-Identifier: GPL-3.0-or-later

package dynali_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bassosimone/dynali"
	"github.com/bassosimone/runtimex"
)

// This example shows how to query the status of a hostname. A canned
// [dynali.TransportFunc] stands in for [dynali.NewHTTPTransport].
func ExampleClient_Status() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	txp := dynali.TransportFunc(func(ctx context.Context, endpoint dynali.Endpoint, body []byte) ([]byte, error) {
		return []byte(`{"status":"success","code":200,"message":"","data":{` +
			`"ip":"1.2.3.4","status":0,"status_message":"Active",` +
			`"expiry_date":"2030-01-01","created":"2020-01-01","last_update":"2024-06-01"}}`), nil
	})

	cfg := dynali.NewConfig()
	clnt := dynali.NewClient(cfg, txp, dynali.DefaultSLogger())

	record := runtimex.PanicOnError1(clnt.Status(ctx, "example.dynali.net", "user1234", "secret"))
	fmt.Println(record.IP, record.IsActive(), record.ExpiryDate.Format(time.DateOnly))

	// Output:
	// 1.2.3.4 true 2030-01-01
}

// This example shows that invalid input fails before anything is sent.
func ExampleClient_Update() {
	txp := dynali.TransportFunc(func(ctx context.Context, endpoint dynali.Endpoint, body []byte) ([]byte, error) {
		panic("not reached")
	})
	clnt := dynali.NewClient(dynali.NewConfig(), txp, dynali.DefaultSLogger())

	_, err := clnt.Update(context.Background(), "", "user1234", "secret", "999.1.1.1")
	var validationErr *dynali.ValidationError
	if errors.As(err, &validationErr) {
		for _, message := range validationErr.Messages {
			fmt.Println(message)
		}
	}

	// Output:
	// Invalid or missing hostname.
	// Invalid IP. Provided `999.1.1.1`.
}

// This example shows how to wait for a non-blocking call.
func ExampleClient_MyIPAsync() {
	txp := dynali.TransportFunc(func(ctx context.Context, endpoint dynali.Endpoint, body []byte) ([]byte, error) {
		return []byte(`{"status":"error","code":401,"message":"bad credentials"}`), nil
	})
	clnt := dynali.NewClient(dynali.NewConfig(), txp, dynali.DefaultSLogger())

	future := clnt.MyIPAsync(context.Background())
	<-future.Done()
	_, err := future.Wait()
	fmt.Println(err)

	// Output:
	// dynali: [401] bad credentials
}

// This example shows the encoded form of a request.
func ExampleEncodeRequest() {
	action := dynali.NewUpdateAction("Example.DDNS.net", "user1234", "secret", "1.2.3.4")
	if messages := dynali.Validate(action); len(messages) > 0 {
		panic(messages)
	}
	body := runtimex.PanicOnError1(dynali.EncodeRequest(action))
	fmt.Println(string(body))

	// Output:
	// {"action":"update","payload":{"hostname":"example.ddns.net","username":"user1234","password":"5ebe2294ecd0e0f08eab7690d2a6ee69","myip":"1.2.3.4"}}
}
