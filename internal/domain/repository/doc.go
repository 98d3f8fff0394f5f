// Package repository define los tipos y contratos de dominio del servicio.
//
// El servicio no es dueño de la identidad ni de las sesiones: ambas viven en el
// identity platform hosteado. Acá solo se describen los contratos que los
// adapters (internal/platform/*, internal/store/pg) deben cumplir:
//
//	┌──────────────────────────────────────────┐
//	│      services/auth (signup, login, ...)  │
//	└──────────────────────────────────────────┘
//	                     │
//	                     ▼
//	┌──────────────────────────────────────────┐
//	│  platform.Client (errores tipados)       │
//	│  IdentityRepository + ProfileRepository  │
//	└──────────────────────────────────────────┘
//	         │               │            │
//	         ▼               ▼            ▼
//	   ┌──────────┐   ┌────────────┐ ┌─────────┐
//	   │  gotrue  │   │ postgrest  │ │ store/pg│   (+ platform/memory)
//	   └──────────┘   └────────────┘ └─────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro.
//   - Los adapters devuelven *platform.Error; nunca strings para clasificar.
package repository
