package main

import (
	"net/http"

	"github.com/Simplici0/blindquote/internal/business"
)

type businessViewData struct {
	baseViewData
	Profile business.Profile
}

func (s *server) handleAdminBusinessForm(w http.ResponseWriter, r *http.Request) {
	profile, err := business.Get(s.db)
	if err != nil {
		http.Error(w, "failed to load business profile", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_business.html", businessViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Profile: profile,
	})
}

func (s *server) handleAdminBusinessSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	profile := business.Profile{
		TradingName:   r.FormValue("trading_name"),
		LegalName:     r.FormValue("legal_name"),
		Phone:         r.FormValue("phone"),
		Email:         r.FormValue("email"),
		Website:       r.FormValue("website"),
		Facebook:      r.FormValue("facebook"),
		ABN:           r.FormValue("abn"),
		AccountName:   r.FormValue("account_name"),
		BSB:           r.FormValue("bsb"),
		AccountNumber: r.FormValue("account_number"),
		Terms:         r.FormValue("terms"),
	}.Normalize()

	if err := business.Update(s.db, profile); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "admin_business.html", businessViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Profile:      profile,
		})
		return
	}

	http.Redirect(w, r, "/admin/business?success=Business+details+saved", http.StatusSeeOther)
}
