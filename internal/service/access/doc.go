// Package access decides which premium features the signed-in tenant may use.
//
// A Resolver is built from the session's plan and answers every gating
// question in the console: sidebar lock icons, upgrade prompts, and the
// 402 responses of gated endpoints all go through HasAccess. Unknown
// feature keys are denied on the basic plan.
package access
