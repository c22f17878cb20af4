package middleware

import (
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

// casbinModel is the RBAC model for war administration: wallets are
// assigned roles, roles carry (resource, action) permissions.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// AdminRole is the role required for administrative war operations
// (starting seasons, fee configuration, feature pauses).
const AdminRole = "role:war_admin"

// CasbinAuth provides role-based authorization for administrative
// operations, with policies persisted in MongoDB.
type CasbinAuth struct {
	enforcer *casbin.Enforcer
}

// NewCasbinAuth creates the authorizer backed by the shared Mongo client.
func NewCasbinAuth(mongoClient *mongo.Client, dbName string) (*CasbinAuth, error) {
	adapterConfig := &mongodbadapter.AdapterConfig{
		DatabaseName:   dbName,
		CollectionName: "casbin_policies",
	}

	adapter, err := mongodbadapter.NewAdapterByDB(mongoClient, adapterConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin MongoDB adapter: %w", err)
	}

	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load Casbin policies: %w", err)
	}

	slog.Info("Casbin authorization initialized", "adapter", "mongodb", "collection", "casbin_policies")

	return &CasbinAuth{enforcer: enforcer}, nil
}

// Require returns nil when the wallet may perform (resource, action).
func (c *CasbinAuth) Require(wallet, resource, action string) error {
	allowed, err := c.enforcer.Enforce(wallet, resource, action)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return fmt.Errorf("wallet %s is not allowed to %s %s", wallet, action, resource)
	}
	return nil
}

// GrantRole assigns a role to a wallet.
func (c *CasbinAuth) GrantRole(wallet, role string) error {
	if _, err := c.enforcer.AddGroupingPolicy(wallet, role); err != nil {
		return fmt.Errorf("failed to grant role %s: %w", role, err)
	}
	return nil
}

// SeedAdminPolicies installs the default permissions of the war admin role.
// Safe to call repeatedly: existing policies are left untouched.
func (c *CasbinAuth) SeedAdminPolicies() error {
	policies := [][]string{
		{AdminRole, "season", "start"},
		{AdminRole, "season", "distribute"},
		{AdminRole, "fees", "configure"},
		{AdminRole, "settings", "toggle"},
		{AdminRole, "siege", "override"},
		{AdminRole, "territory", "register"},
	}
	for _, p := range policies {
		if _, err := c.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	return nil
}
