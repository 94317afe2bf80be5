package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/profile"
	"github.com/claude/planforge/internal/storage"
)

// --- Tool definitions ---

var toolGeneratePlan = mcp.NewTool("generate_training_plan",
	mcp.WithDescription("Generate a complete weekly resistance training plan from a user profile. The plan is deterministic: the same profile always yields the same plan. Returns the plan or a typed rejection if the structural gate fails."),
	mcp.WithString("activity_level", mcp.Required(), mcp.Description("Declared activity level (e.g. 'Sedentário', 'Iniciante', 'Intermediário', 'Avançado', 'Atleta Alto Rendimento')")),
	mcp.WithNumber("frequency", mcp.Required(), mcp.Description("Weekly training sessions (1-7)")),
	mcp.WithNumber("available_time_minutes", mcp.Description("Minutes available per session. 0 means unconstrained.")),
	mcp.WithNumber("imc", mcp.Description("Body mass index, used for deficit detection")),
	mcp.WithNumber("age", mcp.Description("Age in years")),
	mcp.WithString("objective", mcp.Description("Training objective in the user's words (e.g. 'emagrecer', 'ganhar massa muscular')")),
	mcp.WithString("division", mcp.Description("Explicit split override (e.g. 'Full Body', 'Upper/Lower', 'PPL')")),
	mcp.WithString("training_location", mcp.Description("Where the user trains"), mcp.Enum("academia", "casa", "ambos", "ar_livre")),
	mcp.WithBoolean("joint_limitations", mcp.Description("Shoulder restriction: excludes overhead and vertical pressing")),
	mcp.WithBoolean("knee_limitations", mcp.Description("Knee restriction: excludes deep flexion and impact movements")),
)

var toolPreviewConstraints = mcp.NewTool("preview_constraints",
	mcp.WithDescription("Resolve a user profile into its effective generation constraints without producing a plan: operational level, split, deficit mode, weekly series ceilings, and any fallback notes."),
	mcp.WithString("activity_level", mcp.Required(), mcp.Description("Declared activity level")),
	mcp.WithNumber("frequency", mcp.Required(), mcp.Description("Weekly training sessions (1-7)")),
	mcp.WithNumber("available_time_minutes", mcp.Description("Minutes available per session")),
	mcp.WithNumber("imc", mcp.Description("Body mass index")),
	mcp.WithString("objective", mcp.Description("Training objective")),
	mcp.WithString("training_location", mcp.Description("Where the user trains"), mcp.Enum("academia", "casa", "ambos", "ar_livre")),
	mcp.WithBoolean("joint_limitations", mcp.Description("Shoulder restriction")),
	mcp.WithBoolean("knee_limitations", mcp.Description("Knee restriction")),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Retrieve a previously generated plan by its ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Plan UUID")),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List recently generated plans, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of plans to return. Defaults to 20.")),
)

var toolGetCatalog = mcp.NewTool("get_exercise_catalog",
	mcp.WithDescription("Browse the exercise catalog, optionally filtered by muscle group and training location."),
	mcp.WithString("muscle", mcp.Description("Filter by primary muscle (e.g. 'peito', 'costas', 'quadríceps')")),
	mcp.WithString("location", mcp.Description("Filter by equipment availability"), mcp.Enum("academia", "casa", "ambos", "ar_livre")),
)

// --- Tool handlers ---

// profileFromRequest maps tool arguments onto the profile contract.
func profileFromRequest(req mcp.CallToolRequest) (profile.UserProfile, error) {
	level, err := req.RequireString("activity_level")
	if err != nil {
		return profile.UserProfile{}, err
	}
	freq, err := req.RequireInt("frequency")
	if err != nil {
		return profile.UserProfile{}, err
	}

	return profile.UserProfile{
		ActivityLevel:        level,
		Frequency:            freq,
		Division:             req.GetString("division", ""),
		AvailableTimeMinutes: req.GetInt("available_time_minutes", 0),
		IMC:                  req.GetFloat("imc", 0),
		Age:                  req.GetInt("age", 0),
		Objective:            req.GetString("objective", ""),
		JointLimitations:     req.GetBool("joint_limitations", false),
		KneeLimitations:      req.GetBool("knee_limitations", false),
		TrainingLocation:     req.GetString("training_location", ""),
	}, nil
}

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	up, err := profileFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := h.planner.Generate(up)
	if !result.Accepted() {
		out, err := mcp.NewToolResultJSON(map[string]any{
			"accepted": false,
			"reason":   result.Rejection.Reason,
			"detail":   result.Rejection.Detail,
		})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return out, nil
	}

	payload := map[string]any{
		"accepted":  true,
		"plan":      result.Plan,
		"split":     result.Constraints.Split,
		"level":     result.Constraints.Level,
		"deficit":   result.Constraints.Deficit,
		"penalties": len(result.Penalties),
	}

	if h.db != nil {
		id, err := h.db.InsertPlan(ctx, storage.PlanRow{
			Profile:   up,
			Plan:      result.Plan,
			Split:     string(result.Constraints.Split),
			Level:     string(result.Constraints.Level),
			Deficit:   result.Constraints.Deficit,
			Penalties: len(result.Penalties),
		})
		if err != nil {
			h.log.Error("mcp generate_training_plan store", "error", err)
		} else {
			payload["id"] = id.String()
		}
	}

	out, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) previewConstraints(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	up, err := profileFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cons := profile.Resolve(up)
	out, err := mcp.NewToolResultJSON(map[string]any{
		"split":                  cons.Split,
		"level":                  cons.Level,
		"declaredLevel":          cons.DeclaredLevel,
		"frequency":              cons.Frequency,
		"availableTimeMinutes":   cons.AvailableMinutes,
		"deficit":                cons.Deficit,
		"goal":                   cons.Goal,
		"shoulderRestricted":     cons.ShoulderRestricted,
		"kneeRestricted":         cons.KneeRestricted,
		"maxExercisesPerSession": cons.Rules.MaxExercisesPerSession,
		"weeklySeriesLimit":      cons.Rules.WeeklySeriesLimit,
		"notes":                  cons.Notes,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.db == nil {
		return mcp.NewToolResultError("persistence is disabled"), nil
	}

	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid plan ID"), nil
	}

	row, err := h.db.GetPlan(ctx, id)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("plan not found"), nil
	}

	out, err := mcp.NewToolResultJSON(row)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.db == nil {
		return mcp.NewToolResultError("persistence is disabled"), nil
	}

	limit := req.GetInt("limit", 20)
	rows, err := h.db.ListPlans(ctx, limit)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) getCatalog(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	muscle := req.GetString("muscle", "")
	location := req.GetString("location", "")

	var templates []catalog.Template
	switch {
	case muscle != "" && location != "":
		templates = h.catalog.ForMuscleAt(catalog.Muscle(muscle), catalog.Location(location))
	case muscle != "":
		templates = h.catalog.ForMuscle(catalog.Muscle(muscle))
	default:
		templates = h.catalog.All()
	}

	out, err := mcp.NewToolResultJSON(templates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}
