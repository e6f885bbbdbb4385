package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mem "dog-adoption/internal/adapters/storage/memory"
	"dog-adoption/internal/platform/logger"
	"dog-adoption/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler, _ := router.New(router.Options{
		Log:         logger.New(logger.Options{Writer: io.Discard}),
		Persistence: mem.NewPersistence(),
		NoSeed:      true,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_TrialWorkflow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Alta administrativa
	dogID := createDog(t, ts.URL, map[string]any{
		"name":   "Milo",
		"breed":  "Beagle",
		"age":    3,
		"size":   "Medium",
		"gender": "Male",
	})

	// 2) Cliente inicia la prueba
	var adoption struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/dogs/"+dogID+"/trial", map[string]any{
			"name":  "Ann",
			"email": "a@x.com",
			"phone": "+15551234567",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 start trial, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &adoption)
		if adoption.ID == "" || adoption.Status != "Active" {
			t.Fatalf("unexpected adoption payload: %s", string(body))
		}
	}

	// 3) El perro quedó On Trial
	{
		st, body := doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dog, got %d", st)
		}
		var dog struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &dog)
		if dog.Status != "On Trial" {
			t.Fatalf("expected On Trial, got %q", dog.Status)
		}
	}

	// 4) Segunda prueba sobre el mismo perro => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/dogs/"+dogID+"/trial", map[string]any{
			"name":  "Bob",
			"email": "b@x.com",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for dog on trial, got %d", st)
		}
	}

	// 5) Cliente devuelve el perro
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+adoption.ID+"/decision", map[string]any{
			"decision": "Return",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 decision, got %d body=%s", st, string(body))
		}
		var rec struct {
			Status   string `json:"status"`
			Decision string `json:"decision"`
		}
		_ = json.Unmarshal(body, &rec)
		if rec.Status != "Completed" || rec.Decision != "Return" {
			t.Fatalf("expected Completed/Return, got %+v", rec)
		}
	}

	// 6) El perro vuelve a estar Available
	{
		st, body := doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dog, got %d", st)
		}
		var dog struct {
			Status    string `json:"status"`
			AdoptedBy string `json:"adoptedBy"`
		}
		_ = json.Unmarshal(body, &dog)
		if dog.Status != "Available" || dog.AdoptedBy != "" {
			t.Fatalf("expected Available without adopter, got %+v", dog)
		}
	}
}

func TestHTTP_ListDogs_FilterAndSort(t *testing.T) {
	ts := newTestServer(t)

	createDog(t, ts.URL, map[string]any{"name": "Rex", "breed": "Great Dane", "age": 5, "size": "Large", "gender": "Male"})
	createDog(t, ts.URL, map[string]any{"name": "Nina", "breed": "Mastiff", "age": 2, "size": "Large", "gender": "Female"})
	createDog(t, ts.URL, map[string]any{"name": "Pip", "breed": "Chihuahua", "age": 1, "size": "Small", "gender": "Male"})

	st, body := doReq(t, ts.URL, "GET", "/dogs?size=Large&sort=age&direction=asc", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}

	var dogs []struct {
		Name string `json:"name"`
		Size string `json:"size"`
		Age  int    `json:"age"`
	}
	_ = json.Unmarshal(body, &dogs)
	if len(dogs) != 2 || dogs[0].Name != "Nina" || dogs[1].Name != "Rex" {
		t.Fatalf("expected [Nina, Rex], got %+v", dogs)
	}

	// Campo de orden desconocido => 400
	st, _ = doReq(t, ts.URL, "GET", "/dogs?sort=status", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported sort field, got %d", st)
	}
}

func TestHTTP_UpdateAndDeleteDog(t *testing.T) {
	ts := newTestServer(t)

	dogID := createDog(t, ts.URL, map[string]any{"name": "Milo", "breed": "Beagle", "age": 3, "size": "Medium", "gender": "Male"})

	{
		st, body := doReq(t, ts.URL, "PUT", "/dogs/"+dogID, map[string]any{
			"name": "Milo II", "breed": "Beagle", "age": 4, "size": "Medium", "gender": "Male",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var dog struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}
		_ = json.Unmarshal(body, &dog)
		if dog.Name != "Milo II" || dog.Age != 4 {
			t.Fatalf("update not applied: %+v", dog)
		}
	}

	{
		st, _ := doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		// Borrar de nuevo => 404 (variante estricta)
		st, _ = doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for repeated delete, got %d", st)
		}
	}
}

func TestHTTP_SeedsDefaultCatalogOnEmptyStore(t *testing.T) {
	handler, _ := router.New(router.Options{
		Log:         logger.New(logger.Options{Writer: io.Discard}),
		Persistence: mem.NewPersistence(),
	})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/dogs", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var dogs []struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &dogs)
	if len(dogs) == 0 {
		t.Fatalf("expected seeded catalog, got empty list")
	}
	for _, d := range dogs {
		if d.Status != "Available" {
			t.Fatalf("seeded dogs must be Available, got %q", d.Status)
		}
	}
}

func createDog(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/dogs", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
