// Package helpers provides test utility functions for the Agenda API.
//
// # Tokens
//
// TokenIssuer signs real RS256 tokens with a throwaway key; its Service
// plugs into the auth middleware:
//
//	issuer := helpers.NewTokenIssuer(t)
//	token := issuer.Token("ana@school.edu", "teacher")
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodDelete, "/events/manager/").
//	    WithToken(token).
//	    WithEventKey("Standup", 1000, 2000).
//	    Do(router)
//
// # Assertions
//
//	helpers.AssertMessage(t, rr, model.MsgElementDeleted)
//	helpers.AssertFailure(t, rr, http.StatusBadRequest, model.ErrCodeEventNotFound)
//	helpers.AssertRecordExists(t, db, "category", "Work")
package helpers
