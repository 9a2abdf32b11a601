package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/blindquote/internal/bands"
	"github.com/Simplici0/blindquote/internal/business"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
	"github.com/Simplici0/blindquote/internal/render"
)

type quoteViewData struct {
	baseViewData
	State     quote.State
	Customer  quote.Customer
	Item      quote.ItemInput
	Editing   bool
	Products  []bands.Product
	Locations []string
	Groups    []bands.Group
	Totals    pricing.Totals
	Quotation template.HTML
	CanSend   bool
}

// quoteForm carries rejected form input back to the page.
type quoteForm struct {
	customer *quote.Customer
	item     *quote.ItemInput
	err      string
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	s.renderQuotePage(w, r, http.StatusOK, quoteForm{})
}

func (s *server) renderQuotePage(w http.ResponseWriter, r *http.Request, status int, form quoteForm) {
	st, err := quoteSessionFrom(r).Snapshot()
	if err != nil {
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return
	}

	data := quoteViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		State:     st,
		Customer:  st.Customer,
		Item:      quote.ItemInput{Quantity: "1", Mounting: string(quote.MountingFaceFit)},
		Products:  bands.Products(),
		Locations: bands.Locations,
		Groups:    bands.Groups,
		Totals:    quote.Totals(st.Items),
		CanSend:   len(st.Items) > 0 && st.Customer.Complete(),
	}

	if item, ok := st.EditingItem(); ok {
		data.Editing = true
		data.Item = inputFromItem(item)
	}
	if form.customer != nil {
		data.Customer = *form.customer
	}
	if form.item != nil {
		data.Item = *form.item
	}
	if form.err != "" {
		data.ErrorMessage = form.err
	}

	if st.Step == quote.StepQuotation && data.CanSend {
		profile, err := business.Get(s.db)
		if err != nil {
			http.Error(w, "failed to load business profile", http.StatusInternalServerError)
			return
		}
		data.Quotation, err = render.Fragment(render.FromState(profile, st, s.now()))
		if err != nil {
			http.Error(w, "failed to render quotation", http.StatusInternalServerError)
			return
		}
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	s.renderTemplate(w, "quote.html", data)
}

func (s *server) handleCustomerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	c := parseCustomerForm(r)
	sess := quoteSessionFrom(r)
	if _, err := sess.Dispatch(quote.SetCustomer{Customer: c}); err != nil {
		s.renderQuotePage(w, r, http.StatusBadRequest, quoteForm{customer: &c, err: err.Error()})
		return
	}
	if _, err := sess.Dispatch(quote.SetStep{Step: quote.StepItems}); err != nil {
		redirectWithError(w, r, err)
		return
	}

	http.Redirect(w, r, "/quote#items", http.StatusSeeOther)
}

func (s *server) handleItemSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := parseItemForm(r)
	item, err := quote.BuildItem(in)
	if err != nil {
		s.renderQuotePage(w, r, http.StatusBadRequest, quoteForm{item: &in, err: itemErrorMessage(err)})
		return
	}

	if _, err := quoteSessionFrom(r).Dispatch(quote.SubmitItem{Item: item}); err != nil {
		s.renderQuotePage(w, r, http.StatusBadRequest, quoteForm{item: &in, err: itemErrorMessage(err)})
		return
	}

	http.Redirect(w, r, "/quote#items", http.StatusSeeOther)
}

func (s *server) handleItemCancel(w http.ResponseWriter, r *http.Request) {
	if _, err := quoteSessionFrom(r).Dispatch(quote.CancelEdit{}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote#items", http.StatusSeeOther)
}

func (s *server) handleItemEdit(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndexParam(w, r)
	if !ok {
		return
	}
	if _, err := quoteSessionFrom(r).Dispatch(quote.BeginEdit{Index: index}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote#items", http.StatusSeeOther)
}

func (s *server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndexParam(w, r)
	if !ok {
		return
	}
	if _, err := quoteSessionFrom(r).Dispatch(quote.DeleteItem{Index: index}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote?success=Item+removed#review", http.StatusSeeOther)
}

func (s *server) handleStep(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	step, err := quote.ParseStep(r.FormValue("step"))
	if err != nil {
		redirectWithError(w, r, err)
		return
	}
	if _, err := quoteSessionFrom(r).Dispatch(quote.SetStep{Step: step}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote#"+string(step), http.StatusSeeOther)
}

func (s *server) handleViewMode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	mode, err := quote.ParseViewMode(r.FormValue("mode"))
	if err != nil {
		redirectWithError(w, r, err)
		return
	}
	if _, err := quoteSessionFrom(r).Dispatch(quote.SetViewMode{Mode: mode}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote#quotation", http.StatusSeeOther)
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := quote.ItemInput{
		Product:  q.Get("product"),
		Group:    q.Get("group"),
		Width:    q.Get("width"),
		Drop:     q.Get("drop"),
		Quantity: q.Get("quantity"),
	}

	preview := quote.PreviewItem(in)
	if name := strings.TrimSpace(in.Product); name != "" {
		product, ok := bands.LookupProduct(name)
		group, _ := bands.ParseGroup(in.Group)
		if !ok || !product.AllowsGroup(group) {
			preview = quote.Preview{WidthBand: preview.WidthBand, DropBand: preview.DropBand}
		}
	}

	writeJSON(w, http.StatusOK, preview)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if _, err := quoteSessionFrom(r).Dispatch(quote.Reset{QuoteNumber: quote.NewQuoteNumber(s.now())}); err != nil {
		redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quote?success=Started+a+new+quote", http.StatusSeeOther)
}

type productResponse struct {
	Name       string        `json:"name"`
	Categories []string      `json:"categories"`
	Groups     []bands.Group `json:"groups"`
}

type catalogueResponse struct {
	Products  []productResponse `json:"products"`
	Locations []string          `json:"locations"`
}

func (s *server) handleProducts(w http.ResponseWriter, r *http.Request) {
	resp := catalogueResponse{Locations: bands.Locations}
	for _, p := range bands.Products() {
		resp.Products = append(resp.Products, productResponse{Name: p.Name, Categories: p.Categories, Groups: p.Groups})
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseCustomerForm(r *http.Request) quote.Customer {
	return quote.Customer{
		Name:    r.FormValue("name"),
		Address: r.FormValue("address"),
		Phone:   r.FormValue("phone"),
		Email:   r.FormValue("email"),
	}.Normalize()
}

func parseItemForm(r *http.Request) quote.ItemInput {
	return quote.ItemInput{
		Location:      strings.TrimSpace(r.FormValue("location")),
		OtherLocation: strings.TrimSpace(r.FormValue("otherLocation")),
		Product:       strings.TrimSpace(r.FormValue("product")),
		Category:      strings.TrimSpace(r.FormValue("category")),
		Group:         strings.TrimSpace(r.FormValue("group")),
		Width:         strings.TrimSpace(r.FormValue("width")),
		Drop:          strings.TrimSpace(r.FormValue("drop")),
		Quantity:      strings.TrimSpace(r.FormValue("quantity")),
		Mounting:      strings.TrimSpace(r.FormValue("recess")),
	}
}

// inputFromItem refills the item form for editing. Locations outside the list come back as
// "Other" with the free text.
func inputFromItem(item quote.LineItem) quote.ItemInput {
	in := quote.ItemInput{
		Location: item.Location,
		Product:  item.Product,
		Category: item.Category,
		Group:    item.Group.String(),
		Width:    strconv.FormatFloat(item.Width, 'f', -1, 64),
		Drop:     strconv.FormatFloat(item.Drop, 'f', -1, 64),
		Quantity: strconv.Itoa(item.Quantity),
		Mounting: string(item.Mounting),
	}
	if !slices.Contains(bands.Locations, item.Location) {
		in.Location = bands.LocationOther
		in.OtherLocation = item.Location
	}
	return in
}

func itemErrorMessage(err error) string {
	switch {
	case errors.Is(err, pricing.ErrPriceUnavailable):
		return "No price is listed for this size in the selected group. Check the measurements or choose another group."
	case errors.Is(err, pricing.ErrInvalidMeasurement):
		return "Width and drop must be positive numbers in millimetres."
	case errors.Is(err, pricing.ErrInvalidGroup):
		return "Choose a fabric group between 1 and 4."
	default:
		return err.Error()
	}
}

func parseIndexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "invalid item index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func redirectWithError(w http.ResponseWriter, r *http.Request, err error) {
	http.Redirect(w, r, "/quote?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode json response: %v", err)
	}
}
