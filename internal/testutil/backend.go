package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RecordedRequest is one call observed by the fake backend.
type RecordedRequest struct {
	Method        string
	Path          string // without the /v1 prefix
	Query         map[string][]string
	Authorization string
}

type fakeUser struct {
	id       string
	email    string
	password string
	name     string
	created  time.Time
}

type fakeProject struct {
	FakeProject
	created time.Time
	updated time.Time
}

type fakeTask struct {
	FakeTask
	created time.Time
	updated time.Time
}

// FakeBackend is an in-process task-management API speaking the snake_case
// wire format under /v1. Protected routes require a bearer token it issued.
type FakeBackend struct {
	srv    *httptest.Server
	secret []byte

	mu           sync.Mutex
	users        map[string]*fakeUser // by id
	projects     map[string]*fakeProject
	projectOrder []string
	tasks        map[string]*fakeTask
	taskOrder    []string
	requests     []RecordedRequest
	failures     map[string]failure
	hook         func(method, path string, query map[string][]string)
	wrap         bool
}

type failure struct {
	status  int
	message string
}

// NewFakeBackend starts a fake backend that shuts down with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &FakeBackend{
		secret:   []byte("test-secret-" + uuid.NewString()),
		users:    make(map[string]*fakeUser),
		projects: make(map[string]*fakeProject),
		tasks:    make(map[string]*fakeTask),
		failures: make(map[string]failure),
	}
	b.srv = httptest.NewServer(b.routes())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the API base URL, including the /v1 prefix.
func (b *FakeBackend) URL() string { return b.srv.URL + "/v1" }

// WrapEntities makes single-entity responses use {"task": {...}} style envelopes.
func (b *FakeBackend) WrapEntities(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wrap = on
}

// FailNext makes the next call to method+path (e.g. "GET /projects") fail.
func (b *FakeBackend) FailNext(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, message: message}
}

// OnRequest installs a hook run before each request is served. Tests use it
// to delay or block specific calls.
func (b *FakeBackend) OnRequest(fn func(method, path string, query map[string][]string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hook = fn
}

// Requests returns a copy of every call received so far.
func (b *FakeBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// CountRequests counts calls matching method and path.
func (b *FakeBackend) CountRequests(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// AddUser registers a user and returns its id.
func (b *FakeBackend) AddUser(email, password, name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(email, password, name)
}

func (b *FakeBackend) addUserLocked(email, password, name string) string {
	u := &fakeUser{id: uuid.NewString(), email: email, password: password, name: name, created: time.Now().UTC()}
	b.users[u.id] = u
	return u.id
}

// IssueToken signs a token for userID valid for ttl.
func (b *FakeBackend) IssueToken(userID string, ttl time.Duration) string {
	b.mu.Lock()
	secret := b.secret
	b.mu.Unlock()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		panic(fmt.Sprintf("signing token: %v", err))
	}
	return signed
}

// RevokeAll invalidates every token issued so far.
func (b *FakeBackend) RevokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secret = []byte("test-secret-" + uuid.NewString())
}

// AddProject seeds a project and returns its id.
func (b *FakeBackend) AddProject(p FakeProject) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.projects[p.ID] = &fakeProject{FakeProject: p, created: now, updated: now}
	b.projectOrder = append(b.projectOrder, p.ID)
	return p.ID
}

// AddTask seeds a task and returns its id.
func (b *FakeBackend) AddTask(t FakeTask) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.tasks[t.ID] = &fakeTask{FakeTask: t, created: now, updated: now}
	b.taskOrder = append(b.taskOrder, t.ID)
	return t.ID
}

// TaskRecord returns the stored task as the backend sees it.
func (b *FakeBackend) TaskRecord(id string) (FakeTask, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tasks[id]
	if !ok {
		return FakeTask{}, false
	}
	return t.FakeTask, true
}

func (b *FakeBackend) routes() *gin.Engine {
	r := gin.New()
	v1 := r.Group("/v1", b.record)

	v1.POST("/auth/login", b.handleLogin)
	v1.POST("/auth/register", b.handleRegister)

	authed := v1.Group("", b.requireAuth)
	authed.GET("/auth/profile", b.handleProfile)

	authed.GET("/projects", b.handleListProjects)
	authed.POST("/projects", b.handleCreateProject)
	authed.GET("/projects/:id", b.handleGetProject)
	authed.PUT("/projects/:id", b.handleUpdateProject)
	authed.DELETE("/projects/:id", b.handleDeleteProject)

	authed.GET("/tasks", b.handleListTasks)
	authed.POST("/tasks", b.handleCreateTask)
	authed.GET("/tasks/:id", b.handleGetTask)
	authed.PUT("/tasks/:id", b.handleUpdateTask)
	authed.PATCH("/tasks/:id/status", b.handleUpdateTaskStatus)
	authed.DELETE("/tasks/:id", b.handleDeleteTask)

	authed.GET("/team/members", b.handleMembers)
	authed.GET("/team/members/:id/tasks", b.handleMemberTasks)
	return r
}

func (b *FakeBackend) record(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, "/v1")
	query := map[string][]string(c.Request.URL.Query())

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          path,
		Query:         query,
		Authorization: c.GetHeader("Authorization"),
	})
	key := c.Request.Method + " " + path
	f, fail := b.failures[key]
	delete(b.failures, key)
	hook := b.hook
	b.mu.Unlock()

	if hook != nil {
		hook(c.Request.Method, path, query)
	}
	if fail {
		c.AbortWithStatusJSON(f.status, gin.H{"message": f.message})
		return
	}
	c.Next()
}

func (b *FakeBackend) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	b.mu.Lock()
	secret := b.secret
	b.mu.Unlock()

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	b.mu.Lock()
	_, known := b.users[claims.Subject]
	b.mu.Unlock()
	if !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.Set("user_id", claims.Subject)
	c.Next()
}

// ---- auth ----

type credentialsBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (b *FakeBackend) handleLogin(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	b.mu.Lock()
	var match *fakeUser
	for _, u := range b.users {
		if u.email == body.Email && u.password == body.Password {
			match = u
			break
		}
	}
	b.mu.Unlock()

	if match == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": b.IssueToken(match.id, time.Hour),
		"user":         userJSON(match),
	})
}

func (b *FakeBackend) handleRegister(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.email == body.Email {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
	}
	id := b.addUserLocked(body.Email, body.Password, body.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "id": id})
}

func (b *FakeBackend) handleProfile(c *gin.Context) {
	b.mu.Lock()
	u := b.users[c.GetString("user_id")]
	out := userJSON(u)
	b.mu.Unlock()
	b.entity(c, http.StatusOK, "user", out)
}

// ---- projects ----

func (b *FakeBackend) handleListProjects(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))

	b.mu.Lock()
	var all []gin.H
	for _, id := range b.projectOrder {
		p := b.projects[id]
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), search) {
			continue
		}
		all = append(all, projectJSON(p, nil))
	}
	b.mu.Unlock()

	items, page, total := paginate(all, c.Query("page"), c.Query("limit"))
	c.JSON(http.StatusOK, gin.H{"projects": items, "total_pages": total, "current_page": page})
}

type projectBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (b *FakeBackend) handleCreateProject(c *gin.Context) {
	var body projectBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == nil || *body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}
	p := FakeProject{Name: *body.Name, Status: "ACTIVE"}
	if body.Description != nil {
		p.Description = *body.Description
	}
	if body.Status != nil {
		p.Status = *body.Status
	}
	id := b.AddProject(p)

	b.mu.Lock()
	out := projectJSON(b.projects[id], nil)
	b.mu.Unlock()
	b.entity(c, http.StatusCreated, "project", out)
}

func (b *FakeBackend) handleGetProject(c *gin.Context) {
	b.mu.Lock()
	p, ok := b.projects[c.Param("id")]
	var out gin.H
	if ok {
		tasks := []gin.H{}
		for _, tid := range b.taskOrder {
			if t := b.tasks[tid]; t.ProjectID == p.ID {
				tasks = append(tasks, taskJSON(t))
			}
		}
		out = projectJSON(p, tasks)
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	b.entity(c, http.StatusOK, "project", out)
}

func (b *FakeBackend) handleUpdateProject(c *gin.Context) {
	var body projectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	p, ok := b.projects[c.Param("id")]
	var out gin.H
	if ok {
		if body.Name != nil {
			p.Name = *body.Name
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.Status != nil {
			p.Status = *body.Status
		}
		p.updated = time.Now().UTC()
		out = projectJSON(p, nil)
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	b.entity(c, http.StatusOK, "project", out)
}

func (b *FakeBackend) handleDeleteProject(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	_, ok := b.projects[id]
	if ok {
		delete(b.projects, id)
		b.projectOrder = slices.DeleteFunc(b.projectOrder, func(s string) bool { return s == id })
		b.taskOrder = slices.DeleteFunc(b.taskOrder, func(tid string) bool {
			if b.tasks[tid].ProjectID == id {
				delete(b.tasks, tid)
				return true
			}
			return false
		})
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- tasks ----

func (b *FakeBackend) handleListTasks(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	projectID := c.Query("project_id")
	status := c.Query("status")
	priority := c.Query("priority")
	assignee := c.Query("assigned_to")

	b.mu.Lock()
	var all []gin.H
	for _, id := range b.taskOrder {
		t := b.tasks[id]
		switch {
		case projectID != "" && t.ProjectID != projectID,
			status != "" && t.Status != status,
			priority != "" && t.Priority != priority,
			assignee != "" && t.AssignedTo != assignee,
			search != "" && !strings.Contains(strings.ToLower(t.Title+" "+t.Description), search):
			continue
		}
		all = append(all, taskJSON(t))
	}
	b.mu.Unlock()

	items, page, total := paginate(all, c.Query("page"), c.Query("limit"))
	c.JSON(http.StatusOK, gin.H{"tasks": items, "total_pages": total, "current_page": page})
}

type taskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	ProjectID   *string `json:"project_id"`
	AssignedTo  *string `json:"assigned_to"`
}

func (t *fakeTask) apply(body taskBody) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Title, body.Title)
	set(&t.Description, body.Description)
	set(&t.Status, body.Status)
	set(&t.Priority, body.Priority)
	set(&t.DueDate, body.DueDate)
	set(&t.ProjectID, body.ProjectID)
	set(&t.AssignedTo, body.AssignedTo)
	t.updated = time.Now().UTC()
}

func (b *FakeBackend) handleCreateTask(c *gin.Context) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == nil || body.ProjectID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title and project_id are required"})
		return
	}

	b.mu.Lock()
	_, projectExists := b.projects[*body.ProjectID]
	b.mu.Unlock()
	if !projectExists {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "project does not exist"})
		return
	}

	t := &fakeTask{FakeTask: FakeTask{Status: "TODO", Priority: "MEDIUM"}}
	t.apply(body)
	id := b.AddTask(t.FakeTask)

	b.mu.Lock()
	out := taskJSON(b.tasks[id])
	b.mu.Unlock()
	b.entity(c, http.StatusCreated, "task", out)
}

func (b *FakeBackend) handleGetTask(c *gin.Context) {
	b.mu.Lock()
	t, ok := b.tasks[c.Param("id")]
	var out gin.H
	if ok {
		out = taskJSON(t)
		if p, ok := b.projects[t.ProjectID]; ok {
			out["project"] = projectJSON(p, nil)
		}
		if u, ok := b.users[t.AssignedTo]; ok {
			out["assignee"] = userJSON(u)
		}
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	b.entity(c, http.StatusOK, "task", out)
}

func (b *FakeBackend) handleUpdateTask(c *gin.Context) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	b.updateTask(c, body)
}

func (b *FakeBackend) handleUpdateTaskStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS COMPLETED"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status must be one of TODO, IN_PROGRESS, COMPLETED"})
		return
	}
	b.updateTask(c, taskBody{Status: &body.Status})
}

func (b *FakeBackend) updateTask(c *gin.Context, body taskBody) {
	b.mu.Lock()
	t, ok := b.tasks[c.Param("id")]
	var out gin.H
	if ok {
		t.apply(body)
		out = taskJSON(t)
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	b.entity(c, http.StatusOK, "task", out)
}

func (b *FakeBackend) handleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	_, ok := b.tasks[id]
	if ok {
		delete(b.tasks, id)
		b.taskOrder = slices.DeleteFunc(b.taskOrder, func(s string) bool { return s == id })
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- team ----

func (b *FakeBackend) handleMembers(c *gin.Context) {
	b.mu.Lock()
	members := make([]gin.H, 0, len(b.users))
	for _, u := range b.users {
		members = append(members, gin.H{"id": u.id, "name": u.name, "email": u.email})
	}
	b.mu.Unlock()

	slices.SortFunc(members, func(a, z gin.H) int {
		return strings.Compare(a["email"].(string), z["email"].(string))
	})
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (b *FakeBackend) handleMemberTasks(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	_, ok := b.users[id]
	tasks := []gin.H{}
	for _, tid := range b.taskOrder {
		if t := b.tasks[tid]; t.AssignedTo == id {
			tasks = append(tasks, taskJSON(t))
		}
	}
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// ---- encoding ----

func (b *FakeBackend) entity(c *gin.Context, status int, key string, body gin.H) {
	b.mu.Lock()
	wrap := b.wrap
	b.mu.Unlock()
	if wrap {
		c.JSON(status, gin.H{key: body})
		return
	}
	c.JSON(status, body)
}

func userJSON(u *fakeUser) gin.H {
	return gin.H{
		"id":         u.id,
		"email":      u.email,
		"name":       u.name,
		"created_at": u.created.Format(time.RFC3339),
	}
}

func projectJSON(p *fakeProject, tasks []gin.H) gin.H {
	out := gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"status":      p.Status,
		"created_at":  p.created.Format(time.RFC3339),
		"updated_at":  p.updated.Format(time.RFC3339),
	}
	if tasks != nil {
		out["tasks"] = tasks
	}
	return out
}

func taskJSON(t *fakeTask) gin.H {
	out := gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"project_id":  t.ProjectID,
		"created_at":  t.created.Format(time.RFC3339),
		"updated_at":  t.updated.Format(time.RFC3339),
	}
	if t.DueDate != "" {
		out["due_date"] = t.DueDate
	}
	if t.AssignedTo != "" {
		out["assigned_to"] = t.AssignedTo
	}
	return out
}

func paginate(all []gin.H, pageParam, limitParam string) ([]gin.H, int, int) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 1 {
		limit = 10
	}
	total := (len(all) + limit - 1) / limit
	if total < 1 {
		total = 1
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []gin.H{}, page, total
	}
	end := min(start+limit, len(all))
	return all[start:end], page, total
}
