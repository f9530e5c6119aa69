// Package salehook composes "sale:created" events from an operator form and
// posts them to a webhook endpoint, for exercising an automation
// pipeline's phone-number routing.
//
// salehook only produces a correctly shaped payload and routes it to the
// chosen target. Deciding whether a phone number is domestic or foreign is
// left to the receiving platform.
//
// A submission runs validate -> compose -> resolve -> submit and always
// yields a single Result, whichever stage failed:
//
//	s, err := salehook.New(
//	    salehook.WithConfig(salehook.DefaultConfig()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := s.Run(ctx, form.Input{
//	    FirstName: "Test", LastName: "Luciano",
//	    Phone: "+34651558844", Email: "test@gmail.com",
//	    Street: "Calle falsa, 61", Zipcode: "17481", City: "Buenos aires",
//	    Nutzflaeche: "50", Endpoint: "make",
//	})
//	fmt.Println(res.Success, res.Message)
package salehook
